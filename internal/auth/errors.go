package auth

import "errors"

// Sentinel errors returned by the auth service. Every public failure is one
// of these so handlers can map to HTTP statuses without inspecting messages.
var (
	ErrDuplicateAccount   = errors.New("account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified, please check your inbox")
	ErrAccountNotFound    = errors.New("no account with that email address exists")

	ErrTokenRequired         = errors.New("token is required")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	ErrAuthorizationMissing = errors.New("authorization header missing")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")

	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)
