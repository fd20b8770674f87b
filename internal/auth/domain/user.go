package domain

import "time"

// Account providers. Email accounts carry a bcrypt hash; Google accounts have
// no password and must sign in through the ID-token flow.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

type User struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Password    string     `json:"-"` // never serialized
	Name        string     `json:"name"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	Provider    string     `json:"provider"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RefreshToken is one usable session continuation. Rotated on use: redeeming
// a token issues a new one and revokes the old row.
type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
