package domain

import "errors"

var (
	// ErrNotConnected means no credential is stored for the user
	ErrNotConnected = errors.New("google drive is not connected")

	// ErrReauthRequired means the stored token cannot be recovered without user action
	ErrReauthRequired = errors.New("reauthentication required")

	// ErrRefreshFailed means the provider rejected the refresh exchange
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrUploadFailed wraps remote storage failures during upload
	ErrUploadFailed = errors.New("upload failed")
)
