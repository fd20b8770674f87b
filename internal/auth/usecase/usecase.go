package usecase

import (
	"context"

	authdomain "formdrop-backend/internal/auth/domain"
	authdto "formdrop-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication business logic
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)

	// GoogleSignIn verifies a Google ID token and signs the account in,
	// optionally capturing a Drive credential from an authorization code sent
	// in the same request
	GoogleSignIn(ctx context.Context, idToken, driveCode string) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)
}
