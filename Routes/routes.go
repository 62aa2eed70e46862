package Routes

import (
	"github.com/yunusabdullaev/crm-clinic-sub000/Controllers"
	"github.com/yunusabdullaev/crm-clinic-sub000/Middleware"
	"github.com/yunusabdullaev/crm-clinic-sub000/Models"
	"github.com/yunusabdullaev/crm-clinic-sub000/SSE"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Controllers.Login)
		public.POST("/register/ClinicGroup", Controllers.RegisterClinicGroup)
	}

	// Authorized routes, any role
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	authorized.Use(Middleware.SetClinicGroup())
	{
		authorized.GET("/user", Controllers.CurrentUser)
		authorized.POST("/SaveFcmToken", Controllers.SaveFcmToken)

		// Patient-related routes
		authorized.GET("/FetchPatients", Controllers.FetchPatients)
		authorized.POST("/CreatePatient", Controllers.CreatePatient)
		authorized.POST("/UpdatePatient", Controllers.UpdatePatient)
		authorized.POST("/DeletePatient", Controllers.DeletePatient)
		authorized.POST("/FetchPatientFilesURLs", Controllers.FetchPatientFilesURLs)
		authorized.POST("/UploadPatientRecord", Controllers.UploadPatientRecord)
		authorized.POST("/DeletePatientRecord", Controllers.DeletePatientRecord)

		// Visit reads
		authorized.POST("/FetchPatientVisits", Controllers.FetchPatientVisits)
		authorized.POST("/FetchVisit", Controllers.FetchVisit)

		// Service catalog reads
		authorized.GET("/FetchActiveServices", Controllers.FetchActiveServices)

		// SSE (Server-Sent Events) route
		authorized.GET("/VisitsSSE", SSE.VisitsSSE)
	}

	// Doctor routes: the visit completion workflow
	doctor := router.Group("/api/protected")
	doctor.Use(Middleware.JwtAuthMiddleware())
	doctor.Use(Middleware.SetClinicGroup())
	doctor.Use(Middleware.PermissionCheck(Models.PermissionDoctor))
	{
		doctor.POST("/StartVisit", Controllers.StartVisit)
		doctor.POST("/SaveVisitDraft", Controllers.SaveVisitDraft)
		doctor.POST("/CompleteVisit", Controllers.CompleteVisit)
		doctor.POST("/UploadXrayImage", Controllers.UploadXrayImage)
		doctor.POST("/DeleteXrayImage", Controllers.DeleteXrayImage)
	}

	// Boss routes: catalog, staff and money
	boss := router.Group("/api/protected")
	boss.Use(Middleware.JwtAuthMiddleware())
	boss.Use(Middleware.SetClinicGroup())
	boss.Use(Middleware.PermissionCheck(Models.PermissionBoss))
	{
		// Service catalog management
		boss.GET("/FetchServices", Controllers.FetchServices)
		boss.POST("/AddService", Controllers.AddService)
		boss.POST("/EditService", Controllers.EditService)
		boss.POST("/DeactivateService", Controllers.DeactivateService)
		boss.POST("/DeleteService", Controllers.DeleteService)

		// Staff management
		boss.POST("/RegisterStaff", Controllers.RegisterStaff)
		boss.POST("/RegisterDoctor", Controllers.RegisterDoctor)
		boss.POST("/DeleteDoctor", Controllers.DeleteDoctor)
		boss.GET("/GetDoctors", Controllers.GetDoctors)
		boss.POST("/SetDoctorDiscountPermission", Controllers.SetDoctorDiscountPermission)

		// Finance views
		boss.POST("/FetchDailyRevenue", Controllers.FetchDailyRevenue)
		boss.POST("/FetchMonthlyRevenue", Controllers.FetchMonthlyRevenue)
		boss.POST("/FetchDoctorRevenue", Controllers.FetchDoctorRevenue)

		// Export-related routes
		boss.POST("/ExportRevenueTable", Controllers.ExportRevenueTable)
		boss.POST("/ExportDoctorVisitsExcel", Controllers.ExportDoctorVisitsExcel)
	}

	// Superadmin routes
	superadmin := router.Group("/api/admin")
	superadmin.Use(Middleware.JwtAuthMiddleware())
	superadmin.Use(Middleware.PermissionCheck(Models.PermissionSuperAdmin))
	{
		superadmin.GET("/FetchClinicGroups", Controllers.FetchClinicGroups)
		superadmin.POST("/FreezeUser", Controllers.FreezeUser)
	}

	// Static file serving
	authorized.Static("/PatientRecords", "./PatientRecords")
	authorized.Static("/XrayImages", "./XrayImages")
	router.Static("/Web", "./Static")
}
