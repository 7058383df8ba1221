package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamclock/attendance-api/internal/domain/auth"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/jwt"
	"github.com/teamclock/attendance-api/internal/pkg/validator"
	"github.com/teamclock/attendance-api/internal/repository/memory"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func newTestService(t *testing.T) (*AuthServiceImpl, user.UserRepository, jwt.Service) {
	t.Helper()
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)
	users := memory.NewUserRepository(memory.NewStore())
	svc := NewAuthService(users, jwtService).(*AuthServiceImpl)
	svc.passwordCost = bcrypt.MinCost
	return svc, users, jwtService
}

func registerJohn(t *testing.T, svc auth.AuthService) auth.TokenResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Name:       "John Doe",
		Email:      "Employee1@Test.com",
		Password:   "password123",
		EmployeeID: "emp001",
		Department: "Engineering",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, users, jwtService := newTestService(t)

	resp := registerJohn(t, svc)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "EMP001", resp.User.EmployeeID)
	assert.Equal(t, "employee1@test.com", resp.User.Email)
	assert.Equal(t, "employee", resp.User.Role)

	stored, err := users.GetByEmail(context.Background(), "employee1@test.com")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "password123", *stored.PasswordHash)

	token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), resp.Token)
	require.NoError(t, err)
	claims, err := jwt.ClaimsFromMap(token.PrivateClaims())
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "Engineering", claims.Department)
	assert.Equal(t, user.RoleEmployee, claims.Role)
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerJohn(t, svc)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Name: "John Again", Email: "employee1@test.com", Password: "password123", EmployeeID: "EMP010", Department: "Engineering",
	})
	assert.ErrorIs(t, err, user.ErrEmailExists)

	_, err = svc.Register(context.Background(), auth.RegisterRequest{
		Name: "Other", Email: "other@test.com", Password: "password123", EmployeeID: "EMP001", Department: "Engineering",
	})
	assert.ErrorIs(t, err, user.ErrEmployeeIDExists)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Name: "", Email: "bad", Password: "short", EmployeeID: "x", Department: "", Role: "owner",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	for _, f := range []string{"name", "email", "password", "employeeId", "department", "role"} {
		assert.Contains(t, fields, f)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerJohn(t, svc)
	ctx := context.Background()

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "EMPLOYEE1@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "John Doe", resp.User.Name)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "employee1@test.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "nobody@test.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	svc, users, _ := newTestService(t)
	registerJohn(t, svc)
	ctx := context.Background()

	resp, err := svc.LoginWithGoogle(ctx, "employee1@test.com", "google-123")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", resp.User.EmployeeID)

	stored, err := users.GetByEmail(ctx, "employee1@test.com")
	require.NoError(t, err)
	require.NotNil(t, stored.OAuthProviderID)
	assert.Equal(t, "google-123", *stored.OAuthProviderID)

	_, err = svc.LoginWithGoogle(ctx, "employee1@test.com", "google-999")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.LoginWithGoogle(ctx, "stranger@test.com", "google-456")
	assert.ErrorIs(t, err, auth.ErrGoogleAccountUnknown)
}

func TestAuthService_Me(t *testing.T) {
	svc, _, _ := newTestService(t)
	reg := registerJohn(t, svc)

	me, err := svc.Me(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.User, me)

	_, err = svc.Me(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, jwtService := newTestService(t)
	reg := registerJohn(t, svc)

	require.NoError(t, svc.Logout(context.Background(), reg.Token))
	assert.True(t, jwtService.IsTokenRevoked(reg.Token))

	assert.ErrorIs(t, svc.Logout(context.Background(), "not-a-token"), auth.ErrInvalidToken)
}
