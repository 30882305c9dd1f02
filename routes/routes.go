package routes

import (
	"github.com/gin-gonic/gin"

	"reportflow/controllers"
	"reportflow/middleware"
	"reportflow/policy"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine) {
	// Public routes (no authentication required)
	public := r.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/register", controllers.Register)
		}
	}

	// Protected routes (authentication required)
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", controllers.GetUserProfile)
		protected.POST("/profile/change-password", controllers.ChangePassword)

		// Reports
		reports := protected.Group("/reports")
		{
			reports.POST("", middleware.RequirePermission(policy.ActionCreateReport), controllers.CreateReport)
			reports.GET("", controllers.GetReports)
			reports.GET("/download/:filename", controllers.DownloadReport)
			reports.GET("/:id", controllers.GetReportByID)
			reports.PUT("/:id/status", middleware.RequirePermission(policy.ActionApproveOrRejectReport), controllers.UpdateReportStatus)
			reports.PUT("/:id", controllers.UpdateReport)
			reports.DELETE("/:id", controllers.DeleteReport)
		}

		// User management (System Admin only)
		users := protected.Group("/users")
		users.Use(middleware.RequirePermission(policy.ActionManageUsers))
		{
			users.GET("", controllers.GetUsers)
			users.POST("", controllers.CreateUser)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}

		// Workflow configuration (System Admin only)
		workflows := protected.Group("/workflows")
		workflows.Use(middleware.RequirePermission(policy.ActionConfigureWorkflow))
		{
			workflows.GET("", controllers.GetWorkflows)
			workflows.POST("", controllers.CreateWorkflow)
		}

		// Audit log (System Admin only)
		audit := protected.Group("/audit")
		audit.Use(middleware.RequirePermission(policy.ActionViewAuditLog))
		{
			audit.GET("/logs", controllers.GetAuditLogs)
		}
	}
}
