package repository

import (
	"errors"
	"time"

	drivedomain "formdrop-backend/internal/drive/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// credentialRepository implements CredentialRepository using GORM
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new GORM-based CredentialRepository
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) FindByUserAndProvider(userID, provider string) (*drivedomain.Credential, error) {
	var cred drivedomain.Credential
	err := r.db.Where("user_id = ? AND provider = ?", userID, provider).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) Upsert(cred *drivedomain.Credential) error {
	existing, err := r.FindByUserAndProvider(cred.UserID, cred.Provider)
	if err != nil {
		return err
	}

	now := time.Now()
	if existing == nil {
		cred.ID = uuid.New().String()
		cred.CreatedAt = now
		cred.UpdatedAt = now
		return r.db.Create(cred).Error
	}

	existing.AccessToken = cred.AccessToken
	if cred.RefreshToken != "" {
		existing.RefreshToken = cred.RefreshToken
	}
	existing.ExpiresAt = cred.ExpiresAt
	existing.UpdatedAt = now
	*cred = *existing
	return r.db.Save(existing).Error
}
