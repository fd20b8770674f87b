package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// so the response does not reveal which accounts exist
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken means the email already has an account
	ErrEmailTaken = errors.New("email already registered")

	// ErrUseGoogleSignIn means the account was created through Google and has
	// no password to check
	ErrUseGoogleSignIn = errors.New("please use Google Sign-In for this account")

	// ErrEmailNotVerified means Google reports the account email as unverified
	ErrEmailNotVerified = errors.New("google account email is not verified")

	// ErrInvalidToken means the JWT failed signature or claim validation
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrSessionExpired means the refresh token is unknown, revoked or past
	// its expiry
	ErrSessionExpired = errors.New("session expired, please sign in again")
)
