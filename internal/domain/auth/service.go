package auth

import (
	"context"

	"github.com/teamclock/attendance-api/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// LoginWithGoogle signs in an existing employee by verified Google email.
	LoginWithGoogle(ctx context.Context, googleEmail string, googleID string) (TokenResponse, error)
	Me(ctx context.Context, userID string) (user.UserResponse, error)
	Logout(ctx context.Context, token string) error
}
