package usecase

import (
	"context"
	"io"

	subdomain "formdrop-backend/internal/submission/domain"
)

// SubmissionUsecase defines the interface for submission business logic
type SubmissionUsecase interface {
	// CreateSubmission validates the payload against the form's upload
	// config, relays it to the owner's Drive (falling back to local storage
	// when the relay fails) and records the submission
	CreateSubmission(ctx context.Context, formID, submitterName, submitterEmail, fileName, mimeType string, fileSize int64, content io.Reader) (*subdomain.Submission, error)

	// GetFormSubmissions lists a form's submissions for its owner
	GetFormSubmissions(userID, formID string) ([]*subdomain.Submission, error)

	// OwnerOfRemoteFile resolves which user's credential serves a proxied
	// file; returns "" when no submission references the file
	OwnerOfRemoteFile(fileID string) (string, error)
}
