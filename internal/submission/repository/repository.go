package repository

import subdomain "formdrop-backend/internal/submission/domain"

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	Create(submission *subdomain.Submission) error
	FindByFormID(formID string) ([]*subdomain.Submission, error)

	// FindByRemoteFileID returns the submission referencing the remote file,
	// or nil when none does
	FindByRemoteFileID(fileID string) (*subdomain.Submission, error)
}
