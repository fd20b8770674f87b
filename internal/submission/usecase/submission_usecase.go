package usecase

import (
	"bytes"
	"context"
	"io"
	"log"
	"time"

	driveusecase "formdrop-backend/internal/drive/usecase"
	formdomain "formdrop-backend/internal/form/domain"
	formrepo "formdrop-backend/internal/form/repository"
	subdomain "formdrop-backend/internal/submission/domain"
	"formdrop-backend/internal/submission/repository"
	"formdrop-backend/pkg/localstore"
)

// submissionUsecase implements SubmissionUsecase interface
type submissionUsecase struct {
	submissionRepo repository.SubmissionRepository
	formRepo       formrepo.FormRepository
	driveUsecase   driveusecase.DriveUsecase
	localStore     *localstore.Store
}

// NewSubmissionUsecase creates a new instance of submissionUsecase
func NewSubmissionUsecase(
	submissionRepo repository.SubmissionRepository,
	formRepo formrepo.FormRepository,
	driveUsecase driveusecase.DriveUsecase,
	localStore *localstore.Store,
) SubmissionUsecase {
	return &submissionUsecase{
		submissionRepo: submissionRepo,
		formRepo:       formRepo,
		driveUsecase:   driveUsecase,
		localStore:     localStore,
	}
}

func (u *submissionUsecase) CreateSubmission(ctx context.Context, formID, submitterName, submitterEmail, fileName, mimeType string, fileSize int64, content io.Reader) (*subdomain.Submission, error) {
	form, err := u.formRepo.FindByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, formdomain.ErrFormNotFound
	}
	if form.AccessLevel == formdomain.AccessClosed || form.Expired(time.Now()) {
		return nil, formdomain.ErrFormClosed
	}

	if !form.UploadConfig.Allows(mimeType) {
		return nil, subdomain.ErrTypeNotAllowed
	}
	if form.UploadConfig.MaxSizeBytes > 0 && fileSize > form.UploadConfig.MaxSizeBytes {
		return nil, subdomain.ErrFileTooLarge
	}

	// Buffer the payload so the local fallback can replay it after a failed
	// relay attempt.
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}

	submission := &subdomain.Submission{
		FormID:         formID,
		FileName:       fileName,
		FileSize:       fileSize,
		SubmitterName:  submitterName,
		SubmitterEmail: submitterEmail,
		SubmittedAt:    time.Now(),
	}

	// The submission record is written regardless of the relay outcome.
	result, relayErr := u.driveUsecase.UploadAsset(ctx, form.UserID, form.Title, form.DriveFolderID, fileName, mimeType, bytes.NewReader(data))
	if relayErr == nil {
		submission.FileURL = result.URL
		submission.RemoteFileID = result.FileID
	} else {
		log.Printf("[Submission] Drive relay failed for form %s, storing locally: %v", formID, relayErr)
		url, localErr := u.localStore.Save("uploads", fileName, bytes.NewReader(data))
		if localErr != nil {
			return nil, localErr
		}
		submission.FileURL = url
	}

	if err := u.submissionRepo.Create(submission); err != nil {
		return nil, err
	}

	return submission, nil
}

func (u *submissionUsecase) GetFormSubmissions(userID, formID string) ([]*subdomain.Submission, error) {
	form, err := u.formRepo.FindByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, formdomain.ErrFormNotFound
	}
	if form.UserID != userID {
		return nil, formdomain.ErrForbidden
	}

	return u.submissionRepo.FindByFormID(formID)
}

func (u *submissionUsecase) OwnerOfRemoteFile(fileID string) (string, error) {
	submission, err := u.submissionRepo.FindByRemoteFileID(fileID)
	if err != nil {
		return "", err
	}
	if submission == nil {
		return "", nil
	}

	form, err := u.formRepo.FindByID(submission.FormID)
	if err != nil {
		return "", err
	}
	if form == nil {
		return "", nil
	}

	return form.UserID, nil
}
