package delivery

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	subdomain "formdrop-backend/internal/submission/domain"
	"formdrop-backend/pkg/localstore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmissionUsecase struct{}

func (stubSubmissionUsecase) CreateSubmission(ctx context.Context, formID, submitterName, submitterEmail, fileName, mimeType string, fileSize int64, content io.Reader) (*subdomain.Submission, error) {
	return &subdomain.Submission{ID: "s1", FormID: formID, FileName: fileName}, nil
}

func (stubSubmissionUsecase) GetFormSubmissions(userID, formID string) ([]*subdomain.Submission, error) {
	return nil, nil
}

func (stubSubmissionUsecase) OwnerOfRemoteFile(fileID string) (string, error) { return "", nil }

func newLogoRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewSubmissionHandler(stubSubmissionUsecase{}, localstore.NewStore(t.TempDir()))
	r := gin.New()
	r.POST("/api/upload-logo", handler.UploadLogo)
	r.POST("/api/upload", handler.Upload)
	return r
}

func multipartFileRequest(t *testing.T, target, fileName, contentType string, size int) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	hdr.Set("Content-Type", contentType)

	part, err := writer.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadLogoAcceptsPNG(t *testing.T) {
	r := newLogoRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartFileRequest(t, "/api/upload-logo", "logo.png", "image/png", 1024))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/logos/`)
	assert.Contains(t, rec.Body.String(), `.png`)
}

func TestUploadLogoRejectsUnsupportedType(t *testing.T) {
	r := newLogoRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartFileRequest(t, "/api/upload-logo", "logo.gif", "image/gif", 1024))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadLogoRejectsOversize(t *testing.T) {
	r := newLogoRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartFileRequest(t, "/api/upload-logo", "logo.png", "image/png", maxLogoSize+1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadLogoRequiresFile(t *testing.T) {
	r := newLogoRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-logo", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadStoresUnderUUIDName(t *testing.T) {
	r := newLogoRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartFileRequest(t, "/api/upload", "report.pdf", "application/pdf", 64))

	assert.Equal(t, http.StatusOK, rec.Code)
	// Original name never appears in the stored path
	assert.NotContains(t, rec.Body.String(), "report")
	assert.Contains(t, rec.Body.String(), `"/uploads/`)
	assert.Contains(t, rec.Body.String(), `.pdf`)
}
