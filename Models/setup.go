package Models

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ClinicGroupExists(id uint) (bool, error) {
	var count int64
	err := DB.Model(&ClinicGroup{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func ConnectDataBase() {

	err := godotenv.Load(".env")

	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	DbHost := os.Getenv("DB_HOST")
	DbUser := os.Getenv("DB_USER")
	DbPassword := os.Getenv("DB_PASSWORD")
	DbName := os.Getenv("DB_NAME")
	DbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", DbHost, DbUser, DbPassword, DbName, DbPort)
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Fatal("connection error:", err)
	}

	// First migrate models with no dependencies
	DB.AutoMigrate(&ClinicGroup{})
	DB.AutoMigrate(&DeviceToken{})

	// Then migrate models that depend on the above
	DB.AutoMigrate(&User{})
	DB.AutoMigrate(&Service{})
	DB.AutoMigrate(&Patient{})
	DB.AutoMigrate(&Doctor{})

	// Finally migrate models that depend on multiple other models
	DB.AutoMigrate(&Visit{})
	DB.AutoMigrate(&VisitService{})
	DB.AutoMigrate(&PlanStep{})
	DB.AutoMigrate(&XrayImage{})
}
