package api

import (
	"net/http"

	"formdrop-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.authHandler.Login)
			auth.POST("/register", h.authHandler.Register)
			auth.POST("/google", h.authHandler.GoogleSignIn)
			auth.POST("/refresh", h.authHandler.RefreshToken)
			auth.POST("/logout", h.authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(h.authUsecase), h.authHandler.Me)
		}

		// Drive routes (protected)
		drive := api.Group("/drive")
		drive.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			drive.POST("/connect", h.driveHandler.Connect)
			drive.GET("/status", h.driveHandler.Status)
			drive.GET("/token", h.driveHandler.Token)
			drive.POST("/upload-asset", h.driveHandler.UploadAsset)
		}

		// Image proxy (public; session only used as an ownership fallback)
		api.GET("/images/:id", delivery.OptionalAuthMiddleware(h.authUsecase), h.driveHandler.Image)

		// Form routes (protected)
		forms := api.Group("/forms")
		forms.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			forms.POST("", h.formHandler.CreateForm)
			forms.GET("", h.formHandler.GetForms)
			forms.GET("/:id", h.formHandler.GetForm)
			forms.PUT("/:id", h.formHandler.UpdateForm)
			forms.DELETE("/:id", h.formHandler.DeleteForm)
		}

		// Public form read for the submission page
		api.GET("/public/forms/:id", h.formHandler.GetPublicForm)

		// Submissions: creation is public, listing is owner-scoped
		api.POST("/submissions", h.submissionHandler.CreateSubmission)
		api.GET("/submissions", delivery.AuthMiddleware(h.authUsecase), h.submissionHandler.GetSubmissions)

		// Local disk uploads
		api.POST("/upload", h.submissionHandler.Upload)
		api.POST("/upload-logo", delivery.AuthMiddleware(h.authUsecase), h.submissionHandler.UploadLogo)

		// Export routes (protected)
		export := api.Group("/export")
		export.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			export.POST("/google-sheet", h.exportHandler.ExportGoogleSheet)
		}

		// Settings routes - Runtime configuration for the picker widget
		settings := api.Group("/settings")
		{
			settings.GET("/picker", GetPickerSettings)
			settings.PUT("/picker", delivery.AuthMiddleware(h.authUsecase), UpdatePickerSettings)
		}
	}
}
