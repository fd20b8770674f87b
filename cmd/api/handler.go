package api

import (
	"path/filepath"

	authDelivery "formdrop-backend/internal/auth/delivery"
	authUsecase "formdrop-backend/internal/auth/usecase"
	driveDelivery "formdrop-backend/internal/drive/delivery"
	driveUsecasePkg "formdrop-backend/internal/drive/usecase"
	exportDelivery "formdrop-backend/internal/export/delivery"
	exportUsecasePkg "formdrop-backend/internal/export/usecase"
	formDelivery "formdrop-backend/internal/form/delivery"
	formUsecasePkg "formdrop-backend/internal/form/usecase"
	subDelivery "formdrop-backend/internal/submission/delivery"
	subUsecasePkg "formdrop-backend/internal/submission/usecase"
	"formdrop-backend/pkg/config"
	"formdrop-backend/pkg/localstore"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase       authUsecase.AuthUsecase
	config            *config.Config
	authHandler       *authDelivery.AuthHandler
	driveHandler      *driveDelivery.DriveHandler
	formHandler       *formDelivery.FormHandler
	submissionHandler *subDelivery.SubmissionHandler
	exportHandler     *exportDelivery.ExportHandler
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	driveUc driveUsecasePkg.DriveUsecase,
	formUc formUsecasePkg.FormUsecase,
	submissionUc subUsecasePkg.SubmissionUsecase,
	exportUc exportUsecasePkg.ExportUsecase,
	localStore *localstore.Store,
	cfg *config.Config,
) *Handler {
	// Initialize runtime config for the settings API
	InitRuntimeConfig(cfg.GooglePickerAPIKey)

	return &Handler{
		authUsecase:       authUc,
		config:            cfg,
		authHandler:       authDelivery.NewAuthHandler(authUc),
		driveHandler:      driveDelivery.NewDriveHandler(driveUc, submissionUc),
		formHandler:       formDelivery.NewFormHandler(formUc),
		submissionHandler: subDelivery.NewSubmissionHandler(submissionUc, localStore),
		exportHandler:     exportDelivery.NewExportHandler(exportUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Locally stored uploads are served straight from disk
	r.Static("/uploads", filepath.Join(h.config.UploadDir, "uploads"))
	r.Static("/logos", filepath.Join(h.config.UploadDir, "logos"))

	SetupRoutes(r, h)

	return r.Run(addr)
}
