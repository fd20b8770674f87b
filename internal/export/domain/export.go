package domain

import "errors"

// SubmissionRecord is one row of the export, as sent by the dashboard client
type SubmissionRecord struct {
	FileName     string `json:"fileName"`
	UploaderName string `json:"uploaderName"`
	Email        string `json:"email"`
	FormTitle    string `json:"formTitle"`
	FileSize     int64  `json:"fileSize"`
	SubmittedAt  string `json:"submittedAt"` // RFC 3339, empty when unknown
	FileURL      string `json:"fileUrl"`
}

var (
	// ErrEmptyInput means there were no submissions to export
	ErrEmptyInput = errors.New("no submissions to export")

	// ErrPermission means the provider denied the spreadsheet call; the
	// caller should prompt re-authentication
	ErrPermission = errors.New("google sheets permission denied")

	// ErrExportFailed wraps any other remote failure
	ErrExportFailed = errors.New("export failed")
)
