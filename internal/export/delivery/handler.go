package delivery

import (
	"errors"
	"net/http"

	drivedomain "formdrop-backend/internal/drive/domain"
	exportdomain "formdrop-backend/internal/export/domain"
	"formdrop-backend/internal/export/usecase"

	"github.com/gin-gonic/gin"
)

// ExportHandler handles spreadsheet export HTTP requests
type ExportHandler struct {
	exportUsecase usecase.ExportUsecase
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportUsecase usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{
		exportUsecase: exportUsecase,
	}
}

// ExportRequest represents the request body for a spreadsheet export
type ExportRequest struct {
	FormID      string                          `json:"formId"`
	FormTitle   string                          `json:"formTitle"`
	Submissions []exportdomain.SubmissionRecord `json:"submissions"`
}

// ExportGoogleSheet creates a spreadsheet from submission records
// POST /api/export/google-sheet
func (h *ExportHandler) ExportGoogleSheet(c *gin.Context) {
	userID := c.GetString("userID")

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.exportUsecase.ExportToSheet(c.Request.Context(), userID, req.FormTitle, req.Submissions)
	if err != nil {
		switch {
		case errors.Is(err, exportdomain.ErrEmptyInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, exportdomain.ErrPermission):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "requiresReauth": true})
		case errors.Is(err, drivedomain.ErrNotConnected),
			errors.Is(err, drivedomain.ErrReauthRequired),
			errors.Is(err, drivedomain.ErrRefreshFailed):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "requiresReauth": true})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sheetId":  result.SheetID,
		"sheetUrl": result.SheetURL,
	})
}
