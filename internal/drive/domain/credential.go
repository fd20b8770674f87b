package domain

import "time"

// ProviderGoogle is the only remote storage provider currently supported.
const ProviderGoogle = "google"

// Credential holds a user's OAuth tokens for a remote storage provider.
// One live row per (user, provider); mutated in place on refresh.
type Credential struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index:idx_credentials_user_provider,unique;not null"`
	Provider     string    `json:"provider" gorm:"index:idx_credentials_user_provider,unique;not null"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    int64     `json:"expires_at"` // unix seconds, 0 when the provider did not report one
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExpiresWithin reports whether the access token is unset, already expired,
// or expires inside the given horizon.
func (c *Credential) ExpiresWithin(now time.Time, horizon time.Duration) bool {
	if c.ExpiresAt == 0 {
		return true
	}
	return c.ExpiresAt <= now.Add(horizon).Unix()
}

// Expired reports whether the access token is unusable outright: no recorded
// expiry, or past it.
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiresAt == 0 || c.ExpiresAt <= now.Unix()
}
