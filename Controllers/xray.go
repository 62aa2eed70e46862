package Controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/yunusabdullaev/crm-clinic-sub000/Models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xrayDir = "./XrayImages"

// UploadXrayImage stores an x-ray file for a started visit and returns the
// serving URL the completion form keeps as an opaque reference.
func UploadXrayImage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to parse form"})
		return
	}

	visitID := c.PostForm("visit_id")
	if visitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Visit ID is required"})
		return
	}

	var visit Models.Visit
	if err := getScopedDB(c, "").First(&visit, visitID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Visit not found"})
		return
	}
	if visit.IsCompleted() {
		c.JSON(http.StatusConflict, gin.H{"error": "Visit already completed"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to retrieve file from form data"})
		return
	}

	visitDir := fmt.Sprintf("%s/%v/", xrayDir, visit.ID)
	if err := os.MkdirAll(visitDir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create visit directory"})
		return
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	filePath := visitDir + filename
	out, err := os.Create(filePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create the file"})
		return
	}
	defer out.Close()

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to open the file"})
		return
	}
	defer src.Close()

	if _, err := io.Copy(out, src); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save the file"})
		return
	}

	url := fmt.Sprintf("/api/protected/XrayImages/%v/%s", visit.ID, filename)
	image := Models.XrayImage{VisitID: visit.ID, URL: url}
	if err := Models.DB.Create(&image).Error; err != nil {
		os.Remove(filePath)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func DeleteXrayImage(c *gin.Context) {
	var input struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var image Models.XrayImage
	if err := Models.DB.Where("url = ?", input.URL).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	var visit Models.Visit
	if err := getScopedDB(c, "").First(&visit, image.VisitID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Visit not found"})
		return
	}
	if visit.IsCompleted() {
		c.JSON(http.StatusConflict, gin.H{"error": "Visit already completed"})
		return
	}

	if err := Models.DB.Unscoped().Delete(&image).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	localPath := fmt.Sprintf("%s/%v/%s", xrayDir, image.VisitID, filepath.Base(input.URL))
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to remove the file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image Deleted Successfully"})
}
