package Models

import (
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	Name          string  `json:"name"`
	UserID        uint    `json:"user_id"`
	Phone         string  `json:"phone"`
	Specialty     string  `json:"specialty"`
	PhotoUrl      string  `json:"photo_url"`
	CanDiscount   bool    `json:"can_discount"`
	Visits        []Visit `json:"visits" gorm:"foreignKey:DoctorID"`
	ClinicGroupID uint    `json:"clinic_group_id"`
	IsFrozen      bool    `json:"is_frozen" gorm:"-"`
}

func GetDoctorByUserID(userID uint) (Doctor, error) {
	var doctor Doctor
	err := DB.Model(&Doctor{}).Where("user_id = ?", userID).First(&doctor).Error
	return doctor, err
}

// DoctorCanDiscount is the authoritative discount-permission lookup, read
// fresh from the database at submission time. A missing doctor row means no
// grant.
func DoctorCanDiscount(doctorID uint) bool {
	var doctor Doctor
	if err := DB.Model(&Doctor{}).Where("id = ?", doctorID).First(&doctor).Error; err != nil {
		return false
	}
	return doctor.CanDiscount
}
