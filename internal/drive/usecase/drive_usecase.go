package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	drivedomain "formdrop-backend/internal/drive/domain"
	"formdrop-backend/internal/drive/repository"
)

// refreshHorizon is how close to expiry a token may get before it is
// refreshed proactively.
const refreshHorizon = 300 * time.Second

// assetsFolderName is the fixed subfolder nested under each form's folder
const assetsFolderName = "assets"

// defaultFolderName is used when an upload carries no form title
const defaultFolderName = "FormDrop Uploads"

// driveUsecase implements DriveUsecase interface
type driveUsecase struct {
	credRepo repository.CredentialRepository
	storage  StorageClient
}

// NewDriveUsecase creates a new instance of driveUsecase
func NewDriveUsecase(credRepo repository.CredentialRepository, storage StorageClient) DriveUsecase {
	return &driveUsecase{
		credRepo: credRepo,
		storage:  storage,
	}
}

func (u *driveUsecase) Connect(ctx context.Context, userID, code string) error {
	token, err := u.storage.Exchange(ctx, code)
	if err != nil {
		return err
	}

	cred := &drivedomain.Credential{
		UserID:       userID,
		Provider:     drivedomain.ProviderGoogle,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		cred.ExpiresAt = token.Expiry.Unix()
	}

	return u.credRepo.Upsert(cred)
}

func (u *driveUsecase) Connected(userID string) (bool, error) {
	cred, err := u.credRepo.FindByUserAndProvider(userID, drivedomain.ProviderGoogle)
	if err != nil {
		return false, err
	}
	return cred != nil, nil
}

// GetAccessToken implements the refresh decision table: a token outside the
// refresh horizon is returned unchanged with no write; an expired or
// expiring token triggers a single refresh exchange whose result is
// persisted (last write wins, no guard against concurrent refreshes).
// Re-authentication is demanded only once the token is actually expired;
// a still-valid token with no refresh token is handed out for its remaining
// lifetime.
func (u *driveUsecase) GetAccessToken(ctx context.Context, userID string) (string, int64, error) {
	cred, err := u.credRepo.FindByUserAndProvider(userID, drivedomain.ProviderGoogle)
	if err != nil {
		return "", 0, err
	}
	if cred == nil {
		return "", 0, drivedomain.ErrNotConnected
	}

	now := time.Now()
	if !cred.ExpiresWithin(now, refreshHorizon) {
		return cred.AccessToken, cred.ExpiresAt, nil
	}

	if cred.RefreshToken == "" {
		if cred.Expired(now) {
			return "", 0, drivedomain.ErrReauthRequired
		}
		return cred.AccessToken, cred.ExpiresAt, nil
	}

	token, err := u.storage.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", drivedomain.ErrRefreshFailed, err)
	}

	cred.AccessToken = token.AccessToken
	cred.ExpiresAt = 0
	if !token.Expiry.IsZero() {
		cred.ExpiresAt = token.Expiry.Unix()
	}
	if token.RefreshToken != "" {
		// Provider rotated the refresh token
		cred.RefreshToken = token.RefreshToken
	}

	if err := u.credRepo.Upsert(cred); err != nil {
		return "", 0, err
	}

	return cred.AccessToken, cred.ExpiresAt, nil
}

func (u *driveUsecase) UploadAsset(ctx context.Context, userID, formTitle, parentFolderID, fileName, mimeType string, content io.Reader) (*UploadResult, error) {
	token, _, err := u.GetAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	formFolderID := parentFolderID
	if formFolderID == "" {
		title := formTitle
		if title == "" {
			title = defaultFolderName
		}
		formFolderID, err = u.storage.EnsureFolder(ctx, token, title, "")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", drivedomain.ErrUploadFailed, err)
		}
	}

	assetsFolderID, err := u.storage.EnsureFolder(ctx, token, assetsFolderName, formFolderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", drivedomain.ErrUploadFailed, err)
	}

	fileID, viewURL, err := u.storage.UploadFile(ctx, token, assetsFolderID, fileName, mimeType, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", drivedomain.ErrUploadFailed, err)
	}

	if err := u.storage.AllowPublicRead(ctx, token, fileID); err != nil {
		// The file object already exists but stays private; surface its id so
		// an operator can reap it.
		return nil, fmt.Errorf("%w: file %s created but permission grant failed: %v", drivedomain.ErrUploadFailed, fileID, err)
	}

	return &UploadResult{
		URL:      "/api/images/" + fileID,
		ViewURL:  viewURL,
		FileID:   fileID,
		FolderID: assetsFolderID,
	}, nil
}

func (u *driveUsecase) OpenFile(ctx context.Context, userID, fileID string) (io.ReadCloser, string, error) {
	token, _, err := u.GetAccessToken(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	return u.storage.Download(ctx, token, fileID)
}
