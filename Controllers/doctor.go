package Controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/yunusabdullaev/crm-clinic-sub000/Models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

func GetDoctors(c *gin.Context) {
	db := getScopedDB(c, "")
	var doctors []Models.Doctor
	if err := db.Model(&Models.Doctor{}).Find(&doctors).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for index := range doctors {
		var user Models.User
		if err := Models.DB.First(&user, doctors[index].UserID).Error; err == nil {
			doctors[index].IsFrozen = user.IsFrozen
		}
	}
	c.JSON(http.StatusOK, doctors)
}

// RegisterDoctor creates the doctor's login and clinical profile together.
func RegisterDoctor(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
		log.Println(err)
		c.String(http.StatusBadRequest, "Bad Request")
		c.Abort()
		return
	}

	clinic_group_id := getClinicGroupID(c)
	if clinic_group_id != 0 {
		exists, err := Models.ClinicGroupExists(clinic_group_id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check clinic group"})
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Clinic group ID does not exist"})
			return
		}
	}

	user := Models.User{}

	user.Username = input.Username
	user.Password = input.Password
	user.Permission = Models.PermissionDoctor
	user.ClinicGroupID = clinic_group_id
	_, err := user.SaveUser()

	if err != nil {
		log.Println(err)
		c.String(http.StatusBadRequest, "Failed To Register User")
		c.Abort()
		return
	}

	var doctor Models.Doctor

	if err := c.ShouldBindBodyWith(&doctor, binding.JSON); err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusBadRequest, err)
		return
	}
	doctor.UserID = user.ID
	doctor.Name = "Dr. " + input.Username
	doctor.ClinicGroupID = clinic_group_id
	// New doctors start without the discount grant; the boss enables it
	// explicitly per doctor.
	doctor.CanDiscount = false
	if err := Models.DB.Model(&Models.Doctor{}).Create(&doctor).Error; err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registered Successfully"})
}

// SetDoctorDiscountPermission grants or revokes a doctor's right to apply
// discounts at visit completion. Boss only.
func SetDoctorDiscountPermission(c *gin.Context) {
	var input struct {
		DoctorID    uint `json:"doctor_id" binding:"required"`
		CanDiscount bool `json:"can_discount"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getScopedDB(c, "")
	var doctor Models.Doctor
	if err := db.Model(&Models.Doctor{}).Where("id = ?", input.DoctorID).First(&doctor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	if err := Models.DB.Model(&Models.Doctor{}).Where("id = ?", doctor.ID).Update("can_discount", input.CanDiscount).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "can_discount": input.CanDiscount})
}

func DeleteDoctor(c *gin.Context) {
	var input struct {
		ID uint `json:"id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	var doctor Models.Doctor
	if err := getScopedDB(c, "").Where("id = ?", input.ID).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve doctor"})
		}
		return
	}

	var user Models.User
	if err := Models.DB.Where("id = ?", doctor.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Associated user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Delete(&doctor).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete doctor"})
		return
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Doctor and associated user deleted successfully"})
}
