package main

import (
	"log"
	"os"

	api "formdrop-backend/cmd/api"
	authdomain "formdrop-backend/internal/auth/domain"
	authRepo "formdrop-backend/internal/auth/repository"
	authUsecase "formdrop-backend/internal/auth/usecase"
	drivedomain "formdrop-backend/internal/drive/domain"
	driveRepo "formdrop-backend/internal/drive/repository"
	driveUsecase "formdrop-backend/internal/drive/usecase"
	exportUsecase "formdrop-backend/internal/export/usecase"
	formdomain "formdrop-backend/internal/form/domain"
	formRepo "formdrop-backend/internal/form/repository"
	formScheduler "formdrop-backend/internal/form/scheduler"
	formUsecase "formdrop-backend/internal/form/usecase"
	subdomain "formdrop-backend/internal/submission/domain"
	subRepo "formdrop-backend/internal/submission/repository"
	subUsecase "formdrop-backend/internal/submission/usecase"
	"formdrop-backend/pkg/config"
	"formdrop-backend/pkg/database"
	"formdrop-backend/pkg/googledrive"
	"formdrop-backend/pkg/googlesheets"
	"formdrop-backend/pkg/localstore"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &drivedomain.Credential{}, &formdomain.Form{}, &subdomain.Submission{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	credentialRepository := driveRepo.NewCredentialRepository(db)
	formRepository := formRepo.NewGormFormRepository(db)
	submissionRepository := subRepo.NewGormSubmissionRepository(db)

	// Initialize Google service wrappers
	driveService := googledrive.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	sheetsService := googlesheets.NewService()

	// Local disk storage for logos and relay fallbacks
	localStore := localstore.NewStore(cfg.UploadDir)

	// Initialize use cases (dependency injection). The drive usecase doubles
	// as the credential capture during Google sign-in.
	driveUsecaseInstance := driveUsecase.NewDriveUsecase(credentialRepository, driveService)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, driveUsecaseInstance, cfg)
	formUsecaseInstance := formUsecase.NewFormUsecase(formRepository)
	submissionUsecaseInstance := subUsecase.NewSubmissionUsecase(submissionRepository, formRepository, driveUsecaseInstance, localStore)
	exportUsecaseInstance := exportUsecase.NewExportUsecase(driveUsecaseInstance, sheetsService)

	// Start the form expiry sweeper
	expiryScheduler := formScheduler.NewFormExpiryScheduler(formUsecaseInstance)
	expiryScheduler.Start()

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, driveUsecaseInstance, formUsecaseInstance, submissionUsecaseInstance, exportUsecaseInstance, localStore, cfg)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := handler.Start(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
