package repository

import (
	"time"

	formdomain "formdrop-backend/internal/form/domain"
)

// FormRepository defines the interface for form data access
type FormRepository interface {
	Create(form *formdomain.Form) error
	FindByID(id string) (*formdomain.Form, error)
	FindByUserID(userID string) ([]*formdomain.Form, error)
	Update(form *formdomain.Form) error
	Delete(id string) error

	// CloseExpired marks every open form whose expiry passed as closed and
	// returns how many rows changed
	CloseExpired(now time.Time) (int64, error)
}
