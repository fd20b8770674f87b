package delivery

import (
	"errors"
	"io"
	"net/http"

	drivedomain "formdrop-backend/internal/drive/domain"
	"formdrop-backend/internal/drive/usecase"

	"github.com/gin-gonic/gin"
)

// FileOwnerResolver maps a remote file id back to the user whose credential
// should serve the proxy request. Implemented by the submission usecase.
type FileOwnerResolver interface {
	OwnerOfRemoteFile(fileID string) (string, error)
}

// DriveHandler handles remote-storage HTTP requests
type DriveHandler struct {
	driveUsecase  usecase.DriveUsecase
	ownerResolver FileOwnerResolver
}

// NewDriveHandler creates a new DriveHandler
func NewDriveHandler(driveUsecase usecase.DriveUsecase, ownerResolver FileOwnerResolver) *DriveHandler {
	return &DriveHandler{
		driveUsecase:  driveUsecase,
		ownerResolver: ownerResolver,
	}
}

// ConnectRequest represents the request body for connecting Google Drive
type ConnectRequest struct {
	Code string `json:"code" binding:"required"`
}

// Connect exchanges an authorization code and stores the credential
// POST /api/drive/connect
func (h *DriveHandler) Connect(c *gin.Context) {
	userID := c.GetString("userID")

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.driveUsecase.Connect(c.Request.Context(), userID, req.Code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": true})
}

// Status reports whether the user has a stored credential
// GET /api/drive/status
func (h *DriveHandler) Status(c *gin.Context) {
	userID := c.GetString("userID")

	connected, err := h.driveUsecase.Connected(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": connected})
}

// Token returns a currently-valid access token for the client-side picker
// GET /api/drive/token
func (h *DriveHandler) Token(c *gin.Context) {
	userID := c.GetString("userID")

	token, expiresAt, err := h.driveUsecase.GetAccessToken(c.Request.Context(), userID)
	if err != nil {
		h.tokenError(c, err)
		return
	}

	resp := gin.H{"accessToken": token}
	if expiresAt != 0 {
		resp["expiresAt"] = expiresAt
	}
	c.JSON(http.StatusOK, resp)
}

// UploadAsset uploads a multipart file into the resolved Drive folder chain
// POST /api/drive/upload-asset
func (h *DriveHandler) UploadAsset(c *gin.Context) {
	userID := c.GetString("userID")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	formTitle := c.PostForm("formTitle")
	parentFolderID := c.PostForm("parentFolderId")

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	result, err := h.driveUsecase.UploadAsset(
		c.Request.Context(),
		userID,
		formTitle,
		parentFolderID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		if errors.Is(err, drivedomain.ErrNotConnected) || errors.Is(err, drivedomain.ErrReauthRequired) || errors.Is(err, drivedomain.ErrRefreshFailed) {
			h.tokenError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Image proxies a remote file's content through the application origin
// GET /api/images/:id
func (h *DriveHandler) Image(c *gin.Context) {
	fileID := c.Param("id")

	ownerID, err := h.ownerResolver.OwnerOfRemoteFile(fileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if ownerID == "" {
		// Not referenced by any submission; fall back to the session user so
		// freshly uploaded design assets still resolve.
		ownerID = c.GetString("userID")
	}
	if ownerID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	body, contentType, err := h.driveUsecase.OpenFile(c.Request.Context(), ownerID, fileID)
	if err != nil {
		if errors.Is(err, drivedomain.ErrNotConnected) || errors.Is(err, drivedomain.ErrReauthRequired) || errors.Is(err, drivedomain.ErrRefreshFailed) {
			h.tokenError(c, err)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

func (h *DriveHandler) tokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, drivedomain.ErrNotConnected):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, drivedomain.ErrReauthRequired), errors.Is(err, drivedomain.ErrRefreshFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "requiresReauth": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
