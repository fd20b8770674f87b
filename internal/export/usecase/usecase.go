package usecase

import (
	"context"

	exportdomain "formdrop-backend/internal/export/domain"
)

// SheetsClient abstracts the spreadsheet provider (implemented by
// pkg/googlesheets)
type SheetsClient interface {
	CreateSpreadsheet(ctx context.Context, accessToken, title string, rows [][]interface{}) (sheetID, sheetURL string, err error)
}

// TokenProvider supplies a currently-valid access token (implemented by the
// drive usecase)
type TokenProvider interface {
	GetAccessToken(ctx context.Context, userID string) (string, int64, error)
}

// ExportResult identifies the created spreadsheet
type ExportResult struct {
	SheetID  string `json:"sheetId"`
	SheetURL string `json:"sheetUrl"`
}

// ExportUsecase defines the interface for spreadsheet export business logic
type ExportUsecase interface {
	ExportToSheet(ctx context.Context, userID, formTitle string, records []exportdomain.SubmissionRecord) (*ExportResult, error)
}
