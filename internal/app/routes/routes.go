package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/controllers"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models/dto"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	assignmentController *controllers.AssignmentController,
	subjectController *controllers.SubjectController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Subjects for the copy form dropdown
		authenticated.GET("/subjects", subjectController.GetSubjects)

		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("", assignmentController.GetAllAssignments)
			assignments.GET("/:id", assignmentController.GetAssignmentByID)
			assignments.GET("/:id/notes", assignmentController.GetAssignmentNotes)

			// Copy flow: GET serves the pre-filled defaults, POST commits
			assignments.GET("/:id/copy", assignmentController.GetCopyDefaults)
			assignments.POST("/:id/copy", assignmentController.CommitCopy)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})
}
