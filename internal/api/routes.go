package api

import (
	"net/http"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures the API routes for the application.
func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	traineeService service.TraineeService,
	staffService service.StaffService,
	adminService service.AdminService,
	profileService service.ProfileService,
) {
	// Create handler instances
	authHandler := NewAuthHandler(authService)
	traineeHandler := NewTraineeHandler(traineeService)
	staffHandler := NewStaffHandler(staffService)
	adminHandler := NewAdminHandler(adminService)
	profileHandler := NewProfileHandler(profileService)

	// Simple health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// --- Public Auth Routes ---
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/reset-eligibility", authHandler.ResetEligibility)
		}

		// --- Protected Routes ---
		protected := apiV1.Group("")
		protected.Use(AuthMiddleware(authService.GetJWTSecret()))
		{
			protected.GET("/me", profileHandler.Get)

			// == Profile Routes (any authenticated user) ==
			profile := protected.Group("/profile")
			{
				profile.GET("", profileHandler.Get)
				profile.PUT("", profileHandler.Update)
				profile.POST("/avatar/upload-url", profileHandler.RequestAvatarUploadURL)
				profile.POST("/avatar/confirm", profileHandler.ConfirmAvatar)
				profile.GET("/avatar/url", profileHandler.AvatarURL)
			}

			// == Trainee Routes ==
			trainee := protected.Group("/trainee")
			trainee.Use(RoleMiddleware(domain.RoleTrainee))
			{
				trainee.GET("/sessions", traineeHandler.OpenSessions)
				trainee.POST("/sessions/:sessionId/book", traineeHandler.BookClass)
				trainee.POST("/sessions/:sessionId/cancel", traineeHandler.CancelBooking)
				trainee.GET("/packages", traineeHandler.Packages)
				trainee.POST("/packages/:packageId/purchase", traineeHandler.PurchasePackage)
				trainee.GET("/activity", traineeHandler.ActivityHistory)
			}

			// == Staff Routes (admins and trainers) ==
			staff := protected.Group("/staff")
			staff.Use(RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer))
			{
				staff.GET("/classes", staffHandler.ListClasses)
				staff.POST("/classes", staffHandler.CreateClass)
				staff.PUT("/classes/:classId", staffHandler.UpdateClass)
				staff.DELETE("/classes/:classId", staffHandler.DeleteClass)
				staff.GET("/classes/:classId/roster", staffHandler.Roster)
				staff.POST("/classes/:classId/roster/:traineeId/toggle", staffHandler.ToggleAttendance)
			}

			// == Admin Routes ==
			admin := protected.Group("/admin")
			admin.Use(RoleMiddleware(domain.RoleAdmin))
			{
				admin.GET("/stats", adminHandler.Stats)
				admin.GET("/activity", adminHandler.ActivityFeed)
				admin.GET("/users", adminHandler.ListUsers)
				admin.POST("/users", adminHandler.CreateUser)
				admin.PUT("/users/:userId", adminHandler.UpdateUser)
				admin.DELETE("/users/:userId", adminHandler.DeleteUser)
				admin.POST("/users/password", adminHandler.GeneratePassword)
				admin.GET("/packages", adminHandler.ListPackages)
				admin.POST("/packages", adminHandler.CreatePackage)
				admin.PUT("/packages/:packageId", adminHandler.UpdatePackage)
				admin.DELETE("/packages/:packageId", adminHandler.DeletePackage)
			}
		}
	}
}
