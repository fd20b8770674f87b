package delivery

import (
	"errors"
	"net/http"
	"time"

	formdomain "formdrop-backend/internal/form/domain"
	"formdrop-backend/internal/form/usecase"

	"github.com/gin-gonic/gin"
)

// FormHandler handles form HTTP requests
type FormHandler struct {
	formUsecase usecase.FormUsecase
}

// NewFormHandler creates a new FormHandler
func NewFormHandler(formUsecase usecase.FormUsecase) *FormHandler {
	return &FormHandler{
		formUsecase: formUsecase,
	}
}

// CreateFormRequest represents the request body for creating a form
type CreateFormRequest struct {
	Title        string                  `json:"title" binding:"required"`
	UploadConfig formdomain.UploadConfig `json:"upload_config"`
	DesignConfig formdomain.DesignConfig `json:"design_config"`
	AccessLevel  string                  `json:"access_level"`
	ExpiryDate   *time.Time              `json:"expiry_date"`
}

// CreateForm creates a new upload form
// POST /api/forms
func (h *FormHandler) CreateForm(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.formUsecase.CreateForm(userID, req.Title, req.UploadConfig, req.DesignConfig, req.AccessLevel, req.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, form)
}

// GetForms returns all forms owned by the session user
// GET /api/forms
func (h *FormHandler) GetForms(c *gin.Context) {
	userID := c.GetString("userID")

	forms, err := h.formUsecase.GetUserForms(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

// GetForm returns a specific form owned by the session user
// GET /api/forms/:id
func (h *FormHandler) GetForm(c *gin.Context) {
	userID := c.GetString("userID")
	formID := c.Param("id")

	form, err := h.formUsecase.GetForm(userID, formID)
	if err != nil {
		h.formError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// UpdateForm updates an existing form
// PUT /api/forms/:id
func (h *FormHandler) UpdateForm(c *gin.Context) {
	userID := c.GetString("userID")
	formID := c.Param("id")

	var updates usecase.FormUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.formUsecase.UpdateForm(userID, formID, updates)
	if err != nil {
		h.formError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// DeleteForm deletes a form
// DELETE /api/forms/:id
func (h *FormHandler) DeleteForm(c *gin.Context) {
	userID := c.GetString("userID")
	formID := c.Param("id")

	if err := h.formUsecase.DeleteForm(userID, formID); err != nil {
		h.formError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "form deleted"})
}

// GetPublicForm returns a form for the public submission page
// GET /api/public/forms/:id
func (h *FormHandler) GetPublicForm(c *gin.Context) {
	formID := c.Param("id")

	form, err := h.formUsecase.GetPublicForm(formID)
	if err != nil {
		if errors.Is(err, formdomain.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
			return
		}
		if errors.Is(err, formdomain.ErrFormClosed) {
			c.JSON(http.StatusGone, gin.H{"error": "form is closed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) formError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, formdomain.ErrFormNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
	case errors.Is(err, formdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
