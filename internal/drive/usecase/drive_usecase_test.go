package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	drivedomain "formdrop-backend/internal/drive/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeCredentialRepo struct {
	cred    *drivedomain.Credential
	upserts int
}

func (f *fakeCredentialRepo) FindByUserAndProvider(userID, provider string) (*drivedomain.Credential, error) {
	if f.cred == nil || f.cred.UserID != userID || f.cred.Provider != provider {
		return nil, nil
	}
	return f.cred, nil
}

func (f *fakeCredentialRepo) Upsert(cred *drivedomain.Credential) error {
	f.upserts++
	f.cred = cred
	return nil
}

type folderCall struct {
	name     string
	parentID string
}

type fakeStorage struct {
	refreshToken *oauth2.Token
	refreshErr   error
	refreshCalls int

	folderCalls []folderCall
	folderErr   error

	uploadedName string
	uploadErr    error

	publicErr   error
	publicCalls int
}

func (f *fakeStorage) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "exchanged", RefreshToken: "refresh"}, nil
}

func (f *fakeStorage) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	f.refreshCalls++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshToken, nil
}

func (f *fakeStorage) EnsureFolder(ctx context.Context, accessToken, name, parentID string) (string, error) {
	f.folderCalls = append(f.folderCalls, folderCall{name: name, parentID: parentID})
	if f.folderErr != nil {
		return "", f.folderErr
	}
	return "folder-" + name, nil
}

func (f *fakeStorage) UploadFile(ctx context.Context, accessToken, folderID, name, mimeType string, content io.Reader) (string, string, error) {
	f.uploadedName = name
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	return "file123", "https://drive.google.com/file/d/file123/view", nil
}

func (f *fakeStorage) AllowPublicRead(ctx context.Context, accessToken, fileID string) error {
	f.publicCalls++
	return f.publicErr
}

func (f *fakeStorage) Download(ctx context.Context, accessToken, fileID string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("content")), "image/png", nil
}

func validCredential(expiresAt int64) *drivedomain.Credential {
	return &drivedomain.Credential{
		ID:           "cred-1",
		UserID:       "user-1",
		Provider:     drivedomain.ProviderGoogle,
		AccessToken:  "stored-token",
		RefreshToken: "stored-refresh",
		ExpiresAt:    expiresAt,
	}
}

func TestGetAccessTokenFreshTokenReusedWithoutWrite(t *testing.T) {
	repo := &fakeCredentialRepo{cred: validCredential(time.Now().Add(time.Hour).Unix())}
	storage := &fakeStorage{}
	uc := NewDriveUsecase(repo, storage)

	token, expiresAt, err := uc.GetAccessToken(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "stored-token", token)
	assert.Equal(t, repo.cred.ExpiresAt, expiresAt)
	assert.Equal(t, 0, storage.refreshCalls)
	assert.Equal(t, 0, repo.upserts)
}

func TestGetAccessTokenNotConnected(t *testing.T) {
	uc := NewDriveUsecase(&fakeCredentialRepo{}, &fakeStorage{})

	_, _, err := uc.GetAccessToken(context.Background(), "user-1")

	assert.ErrorIs(t, err, drivedomain.ErrNotConnected)
}

func TestGetAccessTokenExpiredWithoutRefreshToken(t *testing.T) {
	cred := validCredential(time.Now().Add(-time.Hour).Unix())
	cred.RefreshToken = ""
	repo := &fakeCredentialRepo{cred: cred}
	storage := &fakeStorage{}
	uc := NewDriveUsecase(repo, storage)

	_, _, err := uc.GetAccessToken(context.Background(), "user-1")

	assert.ErrorIs(t, err, drivedomain.ErrReauthRequired)
	assert.Equal(t, 0, storage.refreshCalls)
	assert.Equal(t, 0, repo.upserts)
}

func TestGetAccessTokenExpiringSoonWithoutRefreshTokenReturnsStored(t *testing.T) {
	// Inside the refresh horizon but not yet expired, with nothing to refresh
	// with: the remaining lifetime is handed out instead of forcing a reconnect
	cred := validCredential(time.Now().Add(100 * time.Second).Unix())
	cred.RefreshToken = ""
	repo := &fakeCredentialRepo{cred: cred}
	storage := &fakeStorage{}
	uc := NewDriveUsecase(repo, storage)

	token, expiresAt, err := uc.GetAccessToken(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "stored-token", token)
	assert.Equal(t, cred.ExpiresAt, expiresAt)
	assert.Equal(t, 0, storage.refreshCalls)
	assert.Equal(t, 0, repo.upserts)
}

func TestGetAccessTokenRefreshFailureSurfacedImmediately(t *testing.T) {
	repo := &fakeCredentialRepo{cred: validCredential(time.Now().Add(-time.Hour).Unix())}
	storage := &fakeStorage{refreshErr: errors.New("provider unavailable")}
	uc := NewDriveUsecase(repo, storage)

	_, _, err := uc.GetAccessToken(context.Background(), "user-1")

	assert.ErrorIs(t, err, drivedomain.ErrRefreshFailed)
	assert.Equal(t, 1, storage.refreshCalls)
	assert.Equal(t, 0, repo.upserts)
}

func TestGetAccessTokenRefreshPersistsNewToken(t *testing.T) {
	repo := &fakeCredentialRepo{cred: validCredential(time.Now().Add(-time.Hour).Unix())}
	expiry := time.Now().Add(time.Hour)
	storage := &fakeStorage{refreshToken: &oauth2.Token{AccessToken: "new-token", Expiry: expiry}}
	uc := NewDriveUsecase(repo, storage)

	token, expiresAt, err := uc.GetAccessToken(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
	assert.Equal(t, expiry.Unix(), expiresAt)
	assert.Equal(t, 1, repo.upserts)
	// Provider did not rotate the refresh token, so the stored one survives
	assert.Equal(t, "stored-refresh", repo.cred.RefreshToken)
}

func TestGetAccessTokenRefreshRotatesRefreshToken(t *testing.T) {
	repo := &fakeCredentialRepo{cred: validCredential(0)}
	storage := &fakeStorage{refreshToken: &oauth2.Token{
		AccessToken:  "new-token",
		RefreshToken: "rotated-refresh",
		Expiry:       time.Now().Add(time.Hour),
	}}
	uc := NewDriveUsecase(repo, storage)

	_, _, err := uc.GetAccessToken(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "rotated-refresh", repo.cred.RefreshToken)
}

func TestGetAccessTokenRefreshesInsideHorizon(t *testing.T) {
	// Expires in 60s, well inside the 300s horizon
	repo := &fakeCredentialRepo{cred: validCredential(time.Now().Add(60 * time.Second).Unix())}
	storage := &fakeStorage{refreshToken: &oauth2.Token{AccessToken: "new-token", Expiry: time.Now().Add(time.Hour)}}
	uc := NewDriveUsecase(repo, storage)

	token, _, err := uc.GetAccessToken(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
	assert.Equal(t, 1, storage.refreshCalls)
}

func TestUploadAssetReturnsProxyURL(t *testing.T) {
	repo := &fakeCredentialRepo{cred: validCredential(time.Now().Add(time.Hour).Unix())}
	storage := &fakeStorage{}
	uc := NewDriveUsecase(repo, storage)

	result, err := uc.UploadAsset(context.Background(), "user-1", "My Form", "", "photo.png", "image/png", strings.NewReader("payload"))

	require.NoError(t, err)
	assert.Equal(t, "/api/images/file123", result.URL)
	assert.Equal(t, "file123", result.FileID)
	assert.Equal(t, "photo.png", storage.uploadedName)

	// Form folder at root, then the assets subfolder nested under it
	require.Len(t, storage.folderCalls, 2)
	assert.Equal(t, folderCall{name: "My Form", parentID: ""}, storage.folderCalls[0])
	assert.Equal(t, folderCall{name: "assets", parentID: "folder-My Form"}, storage.folderCalls[1])
}

func TestUploadAssetWithExplicitParentSkipsFormFolder(t *testing.T) {
	repo := &fakeCredentialRepo{cred: validCredential(time.Now().Add(time.Hour).Unix())}
	storage := &fakeStorage{}
	uc := NewDriveUsecase(repo, storage)

	_, err := uc.UploadAsset(context.Background(), "user-1", "", "existing-folder", "photo.png", "image/png", strings.NewReader("payload"))

	require.NoError(t, err)
	require.Len(t, storage.folderCalls, 1)
	assert.Equal(t, folderCall{name: "assets", parentID: "existing-folder"}, storage.folderCalls[0])
}

func TestUploadAssetPermissionFailureSurfacesFileID(t *testing.T) {
	repo := &fakeCredentialRepo{cred: validCredential(time.Now().Add(time.Hour).Unix())}
	storage := &fakeStorage{publicErr: errors.New("permission api down")}
	uc := NewDriveUsecase(repo, storage)

	_, err := uc.UploadAsset(context.Background(), "user-1", "My Form", "", "photo.png", "image/png", strings.NewReader("payload"))

	require.Error(t, err)
	assert.ErrorIs(t, err, drivedomain.ErrUploadFailed)
	// The created file's id is surfaced so orphans can be reaped
	assert.Contains(t, err.Error(), "file123")
}
