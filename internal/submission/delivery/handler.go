package delivery

import (
	"errors"
	"net/http"

	formdomain "formdrop-backend/internal/form/domain"
	subdomain "formdrop-backend/internal/submission/domain"
	"formdrop-backend/internal/submission/usecase"
	"formdrop-backend/pkg/localstore"

	"github.com/gin-gonic/gin"
)

// maxLogoSize is the upper bound for form logo uploads
const maxLogoSize = 2 << 20 // 2MB

// logoMimeTypes lists the mime types accepted for the logo path
var logoMimeTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/svg+xml": true,
}

// SubmissionHandler handles submission and local upload HTTP requests
type SubmissionHandler struct {
	submissionUsecase usecase.SubmissionUsecase
	localStore        *localstore.Store
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(submissionUsecase usecase.SubmissionUsecase, localStore *localstore.Store) *SubmissionHandler {
	return &SubmissionHandler{
		submissionUsecase: submissionUsecase,
		localStore:        localStore,
	}
}

// CreateSubmission accepts a public form submission
// POST /api/submissions (multipart: file, formId, submitterName?, submitterEmail?)
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	formID := c.PostForm("formId")
	if formID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formId is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	submission, err := h.submissionUsecase.CreateSubmission(
		c.Request.Context(),
		formID,
		c.PostForm("submitterName"),
		c.PostForm("submitterEmail"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, formdomain.ErrFormNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		case errors.Is(err, formdomain.ErrFormClosed):
			c.JSON(http.StatusGone, gin.H{"error": "form is closed"})
		case errors.Is(err, subdomain.ErrTypeNotAllowed), errors.Is(err, subdomain.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// GetSubmissions lists a form's submissions for its owner
// GET /api/submissions?formId=
func (h *SubmissionHandler) GetSubmissions(c *gin.Context) {
	userID := c.GetString("userID")

	formID := c.Query("formId")
	if formID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formId is required"})
		return
	}

	submissions, err := h.submissionUsecase.GetFormSubmissions(userID, formID)
	if err != nil {
		switch {
		case errors.Is(err, formdomain.ErrFormNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		case errors.Is(err, formdomain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// Upload stores a file on local disk under a UUID name
// POST /api/upload
func (h *SubmissionHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	url, err := h.localStore.Save("uploads", fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// UploadLogo stores a form logo after validating its type and size
// POST /api/upload-logo
func (h *SubmissionHandler) UploadLogo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	if !logoMimeTypes[fileHeader.Header.Get("Content-Type")] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo must be a png, jpeg or svg image"})
		return
	}
	if fileHeader.Size > maxLogoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo must be 2MB or smaller"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	url, err := h.localStore.Save("logos", fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
