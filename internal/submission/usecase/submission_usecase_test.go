package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	driveusecase "formdrop-backend/internal/drive/usecase"
	formdomain "formdrop-backend/internal/form/domain"
	subdomain "formdrop-backend/internal/submission/domain"
	"formdrop-backend/pkg/localstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFormRepo struct {
	forms map[string]*formdomain.Form
}

func (f *fakeFormRepo) Create(form *formdomain.Form) error { f.forms[form.ID] = form; return nil }

func (f *fakeFormRepo) FindByID(id string) (*formdomain.Form, error) {
	return f.forms[id], nil
}

func (f *fakeFormRepo) FindByUserID(userID string) ([]*formdomain.Form, error) { return nil, nil }
func (f *fakeFormRepo) Update(form *formdomain.Form) error                     { return nil }
func (f *fakeFormRepo) Delete(id string) error                                 { return nil }
func (f *fakeFormRepo) CloseExpired(now time.Time) (int64, error)              { return 0, nil }

type fakeSubmissionRepo struct {
	created []*subdomain.Submission
	byFile  map[string]*subdomain.Submission
}

func (f *fakeSubmissionRepo) Create(submission *subdomain.Submission) error {
	f.created = append(f.created, submission)
	return nil
}

func (f *fakeSubmissionRepo) FindByFormID(formID string) ([]*subdomain.Submission, error) {
	var out []*subdomain.Submission
	for _, s := range f.created {
		if s.FormID == formID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) FindByRemoteFileID(fileID string) (*subdomain.Submission, error) {
	return f.byFile[fileID], nil
}

type fakeDriveUsecase struct {
	uploadErr    error
	uploadCalls  int
	lastTitle    string
	lastParentID string
}

func (f *fakeDriveUsecase) Connect(ctx context.Context, userID, code string) error { return nil }
func (f *fakeDriveUsecase) Connected(userID string) (bool, error)                  { return true, nil }

func (f *fakeDriveUsecase) GetAccessToken(ctx context.Context, userID string) (string, int64, error) {
	return "token", 0, nil
}

func (f *fakeDriveUsecase) UploadAsset(ctx context.Context, userID, formTitle, parentFolderID, fileName, mimeType string, content io.Reader) (*driveusecase.UploadResult, error) {
	f.uploadCalls++
	f.lastTitle = formTitle
	f.lastParentID = parentFolderID
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &driveusecase.UploadResult{
		URL:    "/api/images/file123",
		FileID: "file123",
	}, nil
}

func (f *fakeDriveUsecase) OpenFile(ctx context.Context, userID, fileID string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("")), "", nil
}

func openForm(uploadConfig formdomain.UploadConfig) *formdomain.Form {
	return &formdomain.Form{
		ID:           "form-1",
		UserID:       "owner-1",
		Title:        "Photo Contest",
		UploadConfig: uploadConfig,
		AccessLevel:  formdomain.AccessPublic,
	}
}

func newTestUsecase(t *testing.T, form *formdomain.Form, drive *fakeDriveUsecase) (SubmissionUsecase, *fakeSubmissionRepo) {
	t.Helper()
	formRepo := &fakeFormRepo{forms: map[string]*formdomain.Form{}}
	if form != nil {
		formRepo.forms[form.ID] = form
	}
	subRepo := &fakeSubmissionRepo{byFile: map[string]*subdomain.Submission{}}
	store := localstore.NewStore(t.TempDir())
	return NewSubmissionUsecase(subRepo, formRepo, drive, store), subRepo
}

func TestCreateSubmissionUnknownForm(t *testing.T) {
	uc, _ := newTestUsecase(t, nil, &fakeDriveUsecase{})

	_, err := uc.CreateSubmission(context.Background(), "missing", "", "", "a.png", "image/png", 10, strings.NewReader("payload"))

	assert.ErrorIs(t, err, formdomain.ErrFormNotFound)
}

func TestCreateSubmissionClosedForm(t *testing.T) {
	form := openForm(formdomain.UploadConfig{})
	form.AccessLevel = formdomain.AccessClosed
	uc, _ := newTestUsecase(t, form, &fakeDriveUsecase{})

	_, err := uc.CreateSubmission(context.Background(), "form-1", "", "", "a.png", "image/png", 10, strings.NewReader("payload"))

	assert.ErrorIs(t, err, formdomain.ErrFormClosed)
}

func TestCreateSubmissionExpiredForm(t *testing.T) {
	form := openForm(formdomain.UploadConfig{})
	past := time.Now().Add(-time.Hour)
	form.ExpiryDate = &past
	uc, _ := newTestUsecase(t, form, &fakeDriveUsecase{})

	_, err := uc.CreateSubmission(context.Background(), "form-1", "", "", "a.png", "image/png", 10, strings.NewReader("payload"))

	assert.ErrorIs(t, err, formdomain.ErrFormClosed)
}

func TestCreateSubmissionTypeNotAllowed(t *testing.T) {
	form := openForm(formdomain.UploadConfig{AllowedTypes: []string{"image/png"}})
	drive := &fakeDriveUsecase{}
	uc, _ := newTestUsecase(t, form, drive)

	_, err := uc.CreateSubmission(context.Background(), "form-1", "", "", "a.pdf", "application/pdf", 10, strings.NewReader("payload"))

	assert.ErrorIs(t, err, subdomain.ErrTypeNotAllowed)
	assert.Equal(t, 0, drive.uploadCalls)
}

func TestCreateSubmissionFileTooLarge(t *testing.T) {
	form := openForm(formdomain.UploadConfig{MaxSizeBytes: 5})
	uc, _ := newTestUsecase(t, form, &fakeDriveUsecase{})

	_, err := uc.CreateSubmission(context.Background(), "form-1", "", "", "a.png", "image/png", 10, strings.NewReader("0123456789"))

	assert.ErrorIs(t, err, subdomain.ErrFileTooLarge)
}

func TestCreateSubmissionRelaysToDrive(t *testing.T) {
	form := openForm(formdomain.UploadConfig{})
	form.DriveFolderID = "folder-42"
	drive := &fakeDriveUsecase{}
	uc, subRepo := newTestUsecase(t, form, drive)

	submission, err := uc.CreateSubmission(context.Background(), "form-1", "Ann", "ann@example.com", "a.png", "image/png", 7, strings.NewReader("payload"))

	require.NoError(t, err)
	assert.Equal(t, "/api/images/file123", submission.FileURL)
	assert.Equal(t, "file123", submission.RemoteFileID)
	assert.Equal(t, "Ann", submission.SubmitterName)
	assert.Equal(t, "Photo Contest", drive.lastTitle)
	assert.Equal(t, "folder-42", drive.lastParentID)
	require.Len(t, subRepo.created, 1)
}

func TestCreateSubmissionFallsBackToLocalStorage(t *testing.T) {
	form := openForm(formdomain.UploadConfig{})
	drive := &fakeDriveUsecase{uploadErr: errors.New("drive unavailable")}
	uc, subRepo := newTestUsecase(t, form, drive)

	submission, err := uc.CreateSubmission(context.Background(), "form-1", "", "", "a.png", "image/png", 7, strings.NewReader("payload"))

	// The submission is recorded despite the failed relay
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(submission.FileURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(submission.FileURL, ".png"))
	assert.Empty(t, submission.RemoteFileID)
	require.Len(t, subRepo.created, 1)
}

func TestGetFormSubmissionsOwnerOnly(t *testing.T) {
	form := openForm(formdomain.UploadConfig{})
	uc, subRepo := newTestUsecase(t, form, &fakeDriveUsecase{})
	subRepo.created = append(subRepo.created, &subdomain.Submission{ID: "s1", FormID: "form-1"})

	submissions, err := uc.GetFormSubmissions("owner-1", "form-1")
	require.NoError(t, err)
	assert.Len(t, submissions, 1)

	_, err = uc.GetFormSubmissions("someone-else", "form-1")
	assert.ErrorIs(t, err, formdomain.ErrForbidden)

	_, err = uc.GetFormSubmissions("owner-1", "missing")
	assert.ErrorIs(t, err, formdomain.ErrFormNotFound)
}

func TestOwnerOfRemoteFile(t *testing.T) {
	form := openForm(formdomain.UploadConfig{})
	uc, subRepo := newTestUsecase(t, form, &fakeDriveUsecase{})
	subRepo.byFile["file123"] = &subdomain.Submission{ID: "s1", FormID: "form-1", RemoteFileID: "file123"}

	owner, err := uc.OwnerOfRemoteFile("file123")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)

	owner, err = uc.OwnerOfRemoteFile("unknown")
	require.NoError(t, err)
	assert.Empty(t, owner)
}
