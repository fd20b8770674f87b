package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	authdomain "formdrop-backend/internal/auth/domain"
	authdto "formdrop-backend/internal/auth/dto"
	"formdrop-backend/internal/auth/repository"
	"formdrop-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// googleTokenInfoURL is Google's ID-token introspection endpoint. A var so
// tests can point it at a local server.
var googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// DriveConnector captures a storage credential during Google sign-in when the
// client sends an authorization code alongside the ID token. Implemented by
// the drive usecase.
type DriveConnector interface {
	Connect(ctx context.Context, userID, code string) error
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	drive    DriveConnector
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase. drive may be nil when
// sign-in should not capture storage credentials.
func NewAuthUsecase(userRepo repository.UserRepository, drive DriveConnector, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		drive:    drive,
		config:   cfg,
	}
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidCredentials
	}
	if user.Provider != authdomain.ProviderEmail {
		return nil, authdomain.ErrUseGoogleSignIn
	}
	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, authdomain.ErrInvalidCredentials
	}

	u.touchLastLogin(user)

	return u.issueSession(user)
}

func (u *authUsecase) Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error) {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrEmailTaken
	}

	hashed, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Provider: authdomain.ProviderEmail,
	}
	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	return u.issueSession(user)
}

// GoogleSignIn verifies the ID token, finds or creates the account and, when
// the client also sent a Drive authorization code, captures the storage
// credential in the same round trip.
func (u *authUsecase) GoogleSignIn(ctx context.Context, idToken, driveCode string) (*authdto.TokenResponse, error) {
	info, err := verifyGoogleIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(info.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &authdomain.User{
			Email:     info.Email,
			Name:      info.Name,
			AvatarURL: info.Picture,
			Provider:  authdomain.ProviderGoogle,
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else {
		// Refresh the profile Google reports
		user.Name = info.Name
		user.AvatarURL = info.Picture
	}

	u.touchLastLogin(user)

	if driveCode != "" && u.drive != nil {
		// Best effort: a failed capture must not block sign-in, the dashboard
		// offers a reconnect
		if err := u.drive.Connect(ctx, user.ID, driveCode); err != nil {
			log.Printf("[Auth] Drive capture during sign-in failed for user %s: %v", user.ID, err)
		}
	}

	return u.issueSession(user)
}

func (u *authUsecase) RefreshToken(refreshToken string) (*authdto.TokenResponse, error) {
	claims, err := u.parseClaims(refreshToken)
	if err != nil {
		return nil, err
	}

	stored, err := u.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.ExpiresAt.Before(time.Now()) {
		return nil, authdomain.ErrSessionExpired
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidToken
	}

	resp, err := u.issueSession(user)
	if err != nil {
		return nil, err
	}

	// Rotate: the redeemed token is single-use
	if err := u.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		log.Printf("[Auth] Failed to revoke rotated refresh token: %v", err)
	}

	return resp, nil
}

func (u *authUsecase) Logout(refreshToken string) error {
	return u.userRepo.DeleteRefreshToken(refreshToken)
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	claims, err := u.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidToken
	}

	return user, nil
}

// issueSession signs a new access/refresh pair and persists the refresh half
func (u *authUsecase) issueSession(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.signToken(jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.signToken(jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": uuid.New().String(),
		"exp":      time.Now().Add(u.config.JWTRefreshExpiry).Unix(),
		"iat":      time.Now().Unix(),
	})
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.SaveRefreshToken(&authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.config.JWTRefreshExpiry),
	}); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) signToken(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, authdomain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, authdomain.ErrInvalidToken
	}
	return claims, nil
}

func (u *authUsecase) touchLastLogin(user *authdomain.User) {
	now := time.Now()
	user.LastLoginAt = &now
	if err := u.userRepo.Update(user); err != nil {
		log.Printf("[Auth] Failed to record login time for user %s: %v", user.ID, err)
	}
}

// googleTokenInfo is the tokeninfo endpoint's response shape
type googleTokenInfo struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified string `json:"email_verified"` // the endpoint reports booleans as strings
	Sub           string `json:"sub"`
}

func verifyGoogleIDToken(ctx context.Context, idToken string) (*googleTokenInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleTokenInfoURL+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to verify google token: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unable to verify google token: status %d: %s", resp.StatusCode, body)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("unable to decode google token info: %v", err)
	}

	if info.EmailVerified != "true" {
		return nil, authdomain.ErrEmailNotVerified
	}

	return &info, nil
}
