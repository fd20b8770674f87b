package usecase

import (
	"context"
	"io"

	"golang.org/x/oauth2"
)

// StorageClient abstracts the remote storage provider (implemented by
// pkg/googledrive)
type StorageClient interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	EnsureFolder(ctx context.Context, accessToken, name, parentID string) (string, error)
	UploadFile(ctx context.Context, accessToken, folderID, name, mimeType string, content io.Reader) (fileID, viewURL string, err error)
	AllowPublicRead(ctx context.Context, accessToken, fileID string) error
	Download(ctx context.Context, accessToken, fileID string) (io.ReadCloser, string, error)
}

// UploadResult is the stable reference returned for an uploaded file. URL is
// the same-origin proxy reference; ViewURL points at the provider's own UI.
type UploadResult struct {
	URL      string `json:"url"`
	ViewURL  string `json:"viewUrl"`
	FileID   string `json:"fileId"`
	FolderID string `json:"folderId"`
}

// DriveUsecase defines the interface for remote storage business logic
type DriveUsecase interface {
	// Connect exchanges an authorization code and stores the credential
	Connect(ctx context.Context, userID, code string) error

	// Connected reports whether a credential is stored for the user
	Connected(userID string) (bool, error)

	// GetAccessToken returns a currently-valid access token and its expiry,
	// refreshing and persisting when needed
	GetAccessToken(ctx context.Context, userID string) (string, int64, error)

	// UploadAsset resolves the destination folder chain and uploads the
	// payload with public-read permission
	UploadAsset(ctx context.Context, userID, formTitle, parentFolderID, fileName, mimeType string, content io.Reader) (*UploadResult, error)

	// OpenFile streams a remote file's content for the image proxy
	OpenFile(ctx context.Context, userID, fileID string) (io.ReadCloser, string, error)
}
