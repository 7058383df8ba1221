package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/database"
	"github.com/teamclock/attendance-api/internal/repository/postgresql"
)

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	require.NoError(t, postgresql.Truncate(ctx, db))
	return db
}

func createTestUser(t *testing.T, repo user.UserRepository, employeeID, email, department string) user.User {
	t.Helper()
	hash := "hash"
	u, err := repo.Create(context.Background(), user.User{
		EmployeeID:   employeeID,
		Name:         "User " + employeeID,
		Email:        email,
		PasswordHash: &hash,
		Role:         user.RoleEmployee,
		Department:   department,
	})
	require.NoError(t, err)
	return u
}
