package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrUnauthorized         = errors.New("authentication required")
	ErrGoogleAccountUnknown = errors.New("no employee is registered with this google email")
	ErrGoogleLoginDisabled  = errors.New("google login is not configured")
)
