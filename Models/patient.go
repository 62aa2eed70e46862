package Models

import (
	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Gender        string  `json:"gender"`
	Age           int     `json:"age"`
	Address       string  `json:"address"`
	Notes         string  `json:"notes"`
	Visits        []Visit `json:"visits" gorm:"foreignKey:PatientID"`
	ClinicGroupID uint    `json:"clinic_group_id"`
}
