package Controllers

import (
	"net/http"

	"github.com/yunusabdullaev/crm-clinic-sub000/Models"

	"github.com/gin-gonic/gin"
)

// FetchServices returns the clinic's full price list, inactive entries
// included, for the boss's catalog screen.
func FetchServices(c *gin.Context) {
	db := getScopedDB(c, "")
	var services []Models.Service
	if err := db.Model(&Models.Service{}).Order("id").Find(&services).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, services)
}

// FetchActiveServices returns only the services that may be added to a
// visit.
func FetchActiveServices(c *gin.Context) {
	db := getScopedDB(c, "")
	var services []Models.Service
	if err := db.Model(&Models.Service{}).Where("is_active = ?", true).Order("id").Find(&services).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, services)
}

func AddService(c *gin.Context) {
	var input Models.Service
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}
	input.ClinicGroupID = getClinicGroupID(c)
	input.IsActive = true
	if err := Models.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Service Created Successfully",
	})
}

func EditService(c *gin.Context) {
	var input Models.Service
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}

	var existing Models.Service
	if err := getScopedDB(c, "").Where("id = ?", input.ID).First(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	input.ClinicGroupID = existing.ClinicGroupID
	if err := Models.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Service Edited Successfully",
	})
}

// DeactivateService hides a service from new selections. Line items already
// drafted against it keep their captured price.
func DeactivateService(c *gin.Context) {
	var input struct {
		ServiceID uint `json:"service_id"`
		IsActive  bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing Models.Service
	if err := getScopedDB(c, "").Where("id = ?", input.ServiceID).First(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	if err := Models.DB.Model(&Models.Service{}).Where("id = ?", input.ServiceID).Update("is_active", input.IsActive).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Service Updated Successfully",
	})
}

func DeleteService(c *gin.Context) {
	var input struct {
		ServiceID uint `json:"service_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := getScopedDB(c, "").Delete(&Models.Service{}, "id = ?", input.ServiceID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Service Deleted Successfully",
	})
}
