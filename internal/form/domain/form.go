package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// AccessLevel controls who can reach a form's public submission page
type AccessLevel string

const (
	AccessPublic  AccessLevel = "public"
	AccessPrivate AccessLevel = "private"
	AccessClosed  AccessLevel = "closed"
)

// UploadConfig constrains what end-users may submit through a form
type UploadConfig struct {
	AllowedTypes []string `json:"allowed_types,omitempty"` // empty means any type
	MaxSizeBytes int64    `json:"max_size_bytes,omitempty"`
}

func (c UploadConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *UploadConfig) Scan(value interface{}) error {
	if value == nil {
		*c = UploadConfig{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for UploadConfig")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, c)
}

// Allows reports whether the config accepts a file of the given mime type
func (c UploadConfig) Allows(mimeType string) bool {
	if len(c.AllowedTypes) == 0 {
		return true
	}
	for _, t := range c.AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// DesignConfig holds free-form presentation settings written by the form editor
type DesignConfig map[string]interface{}

func (c DesignConfig) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(DesignConfig{})
	}
	return json.Marshal(c)
}

func (c *DesignConfig) Scan(value interface{}) error {
	if value == nil {
		*c = DesignConfig{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for DesignConfig")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, c)
}

// Form is an upload form created by an admin and read by the public
// submission page
type Form struct {
	ID            string       `json:"id" gorm:"primaryKey"`
	UserID        string       `json:"user_id" gorm:"index;not null"`
	Title         string       `json:"title" gorm:"not null"`
	UploadConfig  UploadConfig `json:"upload_config" gorm:"type:jsonb"`
	DesignConfig  DesignConfig `json:"design_config" gorm:"type:jsonb"`
	DriveFolderID string       `json:"drive_folder_id,omitempty"`
	AccessLevel   AccessLevel  `json:"access_level" gorm:"default:public"`
	ExpiryDate    *time.Time   `json:"expiry_date,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Expired reports whether the form's expiry date has passed
func (f *Form) Expired(now time.Time) bool {
	return f.ExpiryDate != nil && f.ExpiryDate.Before(now)
}

var (
	// ErrFormNotFound means no form exists with the given id
	ErrFormNotFound = errors.New("form not found")

	// ErrFormClosed means the form no longer accepts submissions
	ErrFormClosed = errors.New("form is closed")

	// ErrForbidden means the session user does not own the form
	ErrForbidden = errors.New("forbidden")
)
