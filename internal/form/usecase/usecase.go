package usecase

import (
	"time"

	formdomain "formdrop-backend/internal/form/domain"
)

// FormUpdateRequest carries the fields an admin may edit on a form
type FormUpdateRequest struct {
	Title        *string                  `json:"title"`
	UploadConfig *formdomain.UploadConfig `json:"upload_config"`
	DesignConfig *formdomain.DesignConfig `json:"design_config"`
	AccessLevel  *string                  `json:"access_level"`
	ExpiryDate   *time.Time               `json:"expiry_date"`
}

// FormUsecase defines the interface for form business logic
type FormUsecase interface {
	CreateForm(userID, title string, uploadConfig formdomain.UploadConfig, designConfig formdomain.DesignConfig, accessLevel string, expiryDate *time.Time) (*formdomain.Form, error)
	GetUserForms(userID string) ([]*formdomain.Form, error)
	GetForm(userID, formID string) (*formdomain.Form, error)
	UpdateForm(userID, formID string, updates FormUpdateRequest) (*formdomain.Form, error)
	DeleteForm(userID, formID string) error

	// GetPublicForm returns a form for the public submission page, enforcing
	// access level and expiry
	GetPublicForm(formID string) (*formdomain.Form, error)

	// CloseExpiredForms is invoked by the expiry sweeper
	CloseExpiredForms(now time.Time) (int64, error)
}
