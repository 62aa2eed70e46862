package main

import (
	"os"

	"github.com/yunusabdullaev/crm-clinic-sub000/CronJobs"
	"github.com/yunusabdullaev/crm-clinic-sub000/FirebaseMessaging"
	"github.com/yunusabdullaev/crm-clinic-sub000/Models"
	"github.com/yunusabdullaev/crm-clinic-sub000/Routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	Models.ConnectDataBase()
	FirebaseMessaging.Setup()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	},
	))
	Routes.ConfigRoutes(router)

	reminderService := CronJobs.NewOpenVisitReminder(Models.DB)
	reminderService.StartReminderCron()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3005"
	}
	router.Run(":" + port)
}
