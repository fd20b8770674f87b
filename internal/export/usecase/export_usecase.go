package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	exportdomain "formdrop-backend/internal/export/domain"

	"google.golang.org/api/googleapi"
)

// headerRow is the fixed 7-column export header
var headerRow = []interface{}{"File Name", "Uploader Name", "Email", "Form", "File Size", "Submitted At", "File URL"}

// exportUsecase implements ExportUsecase interface
type exportUsecase struct {
	tokens TokenProvider
	sheets SheetsClient
}

// NewExportUsecase creates a new instance of exportUsecase
func NewExportUsecase(tokens TokenProvider, sheets SheetsClient) ExportUsecase {
	return &exportUsecase{
		tokens: tokens,
		sheets: sheets,
	}
}

func (u *exportUsecase) ExportToSheet(ctx context.Context, userID, formTitle string, records []exportdomain.SubmissionRecord) (*ExportResult, error) {
	// Rejected before any network call
	if len(records) == 0 {
		return nil, exportdomain.ErrEmptyInput
	}

	token, _, err := u.tokens.GetAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	title := formTitle
	if title == "" {
		title = "FormDrop"
	}

	sheetID, sheetURL, err := u.sheets.CreateSpreadsheet(ctx, token, title+" - Submissions", buildRows(formTitle, records))
	if err != nil {
		if isPermissionError(err) {
			return nil, fmt.Errorf("%w: %v", exportdomain.ErrPermission, err)
		}
		return nil, fmt.Errorf("%w: %v", exportdomain.ErrExportFailed, err)
	}

	return &ExportResult{
		SheetID:  sheetID,
		SheetURL: sheetURL,
	}, nil
}

// buildRows renders the header plus one row per record. Missing fields render
// as empty strings, except the form title which falls back to "Unknown".
func buildRows(defaultFormTitle string, records []exportdomain.SubmissionRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, headerRow)

	for _, rec := range records {
		formTitle := rec.FormTitle
		if formTitle == "" {
			formTitle = defaultFormTitle
		}
		if formTitle == "" {
			formTitle = "Unknown"
		}

		rows = append(rows, []interface{}{
			rec.FileName,
			rec.UploaderName,
			rec.Email,
			formTitle,
			formatFileSize(rec.FileSize),
			formatSubmittedAt(rec.SubmittedAt),
			rec.FileURL,
		})
	}

	return rows
}

// formatFileSize renders a byte count as megabytes with two decimal places
func formatFileSize(size int64) string {
	if size <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}

// formatSubmittedAt renders an RFC 3339 timestamp as a short fixed-locale
// date; unparseable values pass through unchanged
func formatSubmittedAt(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format("Jan 2, 2006")
}

// isPermissionError inspects the error code and message for an authorization
// denial so the caller can prompt re-authentication
func isPermissionError(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission") || strings.Contains(msg, "insufficient authentication")
}
