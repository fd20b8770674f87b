package repository

import drivedomain "formdrop-backend/internal/drive/domain"

// CredentialRepository defines the interface for OAuth credential storage
type CredentialRepository interface {
	// FindByUserAndProvider returns the stored credential or nil when absent
	FindByUserAndProvider(userID, provider string) (*drivedomain.Credential, error)

	// Upsert creates or replaces the credential for (user, provider).
	// Last write wins; concurrent refreshes are not serialized.
	Upsert(cred *drivedomain.Credential) error
}
