package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/repository/postgresql"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, repo, "EMP001", "John@Company.com", "Engineering")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "john@company.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", byID.EmployeeID)

	byEmail, err := repo.GetByEmail(ctx, "JOHN@company.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byCode, err := repo.GetByEmployeeID(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@company.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_CreateDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "EMP001", "john@company.com", "Engineering")

	_, err := repo.Create(ctx, user.User{EmployeeID: "EMP002", Name: "X", Email: "john@company.com", Role: user.RoleEmployee, Department: "Sales"})
	assert.ErrorIs(t, err, user.ErrEmailExists)

	_, err = repo.Create(ctx, user.User{EmployeeID: "EMP001", Name: "X", Email: "x@company.com", Role: user.RoleEmployee, Department: "Sales"})
	assert.ErrorIs(t, err, user.ErrEmployeeIDExists)
}

func TestUserRepository_ListByRoleAndLinkGoogle(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "EMP002", "jane@company.com", "Design")
	createTestUser(t, repo, "EMP001", "john@company.com", "Engineering")

	employees, err := repo.ListByRole(ctx, user.RoleEmployee)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "EMP001", employees[0].EmployeeID)
	assert.Equal(t, "EMP002", employees[1].EmployeeID)

	managers, err := repo.ListByRole(ctx, user.RoleManager)
	require.NoError(t, err)
	assert.Empty(t, managers)

	linked, err := repo.LinkGoogleAccount(ctx, "google-1", "john@company.com")
	require.NoError(t, err)
	require.NotNil(t, linked.OAuthProviderID)
	assert.Equal(t, "google-1", *linked.OAuthProviderID)

	_, err = repo.LinkGoogleAccount(ctx, "google-1", "jane@company.com")
	assert.ErrorIs(t, err, user.ErrOAuthProviderIDExists)

	_, err = repo.LinkGoogleAccount(ctx, "google-2", "ghost@company.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
