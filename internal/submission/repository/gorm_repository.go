package repository

import (
	"errors"
	"time"

	subdomain "formdrop-backend/internal/submission/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormSubmissionRepository implements SubmissionRepository using GORM
type gormSubmissionRepository struct {
	db *gorm.DB
}

// NewGormSubmissionRepository creates a new GORM-based SubmissionRepository
func NewGormSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &gormSubmissionRepository{db: db}
}

func (r *gormSubmissionRepository) Create(submission *subdomain.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	return r.db.Create(submission).Error
}

func (r *gormSubmissionRepository) FindByFormID(formID string) ([]*subdomain.Submission, error) {
	var submissions []*subdomain.Submission
	err := r.db.Where("form_id = ?", formID).Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *gormSubmissionRepository) FindByRemoteFileID(fileID string) (*subdomain.Submission, error) {
	var submission subdomain.Submission
	err := r.db.Where("remote_file_id = ?", fileID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}
