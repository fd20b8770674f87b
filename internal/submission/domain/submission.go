package domain

import (
	"errors"
	"time"
)

// Submission records one uploaded file. Created exactly once per upload and
// never mutated afterwards.
type Submission struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	FormID         string    `json:"form_id" gorm:"index;not null"`
	FileName       string    `json:"file_name"`
	FileURL        string    `json:"file_url"` // same-origin proxy URL, or local path when the relay failed
	RemoteFileID   string    `json:"remote_file_id,omitempty" gorm:"index"`
	FileSize       int64     `json:"file_size"`
	SubmitterName  string    `json:"submitter_name,omitempty"`
	SubmitterEmail string    `json:"submitter_email,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

var (
	// ErrTypeNotAllowed means the form's upload config rejects the mime type
	ErrTypeNotAllowed = errors.New("file type not allowed")

	// ErrFileTooLarge means the payload exceeds the form's size limit
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
)
