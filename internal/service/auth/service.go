package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamclock/attendance-api/internal/domain/auth"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	passwordCost int
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		passwordCost:   bcrypt.DefaultCost,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), a.passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (a *AuthServiceImpl) issueToken(u user.User) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(jwt.Claims{
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Department: u.Department,
		Role:       u.Role,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.TokenResponse{
		Token:     token,
		ExpiresIn: expiresAt,
		User:      u.ToResponse(),
	}, nil
}

// Register creates a roster entry with a password login and signs it in.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	created, err := a.UserRepository.Create(ctx, user.User{
		EmployeeID:   req.EmployeeID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hash,
		Role:         user.Role(req.Role),
		Department:   req.Department,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) || errors.Is(err, user.ErrEmployeeIDExists) {
			return auth.TokenResponse{}, err
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User registered", "employee_id", created.EmployeeID, "role", created.Role)
	return a.issueToken(created)
}

func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.HasPassword() {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueToken(userData)
}

// LoginWithGoogle only signs in employees that already exist on the roster.
// The first Google login links the Google id to the account.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string, googleID string) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, googleEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrGoogleAccountUnknown
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user data by email: %w", err)
	}

	if userData.OAuthProviderID == nil {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, googleID, userData.Email)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	} else if *userData.OAuthProviderID != googleID {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueToken(userData)
}

func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return userData.ToResponse(), nil
}

// Logout revokes the access token until its natural expiry.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	parsed, err := jwtauth.VerifyToken(a.Service.JWTAuth(), token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	expiresAt := parsed.Expiration()
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(24 * time.Hour)
	}
	a.Service.RevokeToken(token, expiresAt)
	return nil
}
