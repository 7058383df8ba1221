package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/database"
)

const userColumns = `id, employee_id, name, email, password_hash, role, department,
		oauth_provider, oauth_provider_id, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.EmployeeID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Department,
		&u.OAuthProvider,
		&u.OAuthProviderID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (employee_id, name, email, password_hash, role, department, oauth_provider, oauth_provider_id)
		VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.EmployeeID,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.Department,
		newUser.OAuthProvider,
		newUser.OAuthProviderID,
	))
	if err != nil {
		if code, constraint := database.PgErrorCode(err); code == database.CodeUniqueViolation {
			switch constraint {
			case "users_email_key":
				return user.User{}, user.ErrEmailExists
			case "users_employee_id_key":
				return user.User{}, user.ErrEmployeeIDExists
			case "users_oauth_provider_id_key":
				return user.User{}, user.ErrOAuthProviderIDExists
			}
		}
		return user.User{}, database.Classify("create user", err)
	}

	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "email = lower($1)", email)
}

// GetByEmployeeID implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	return r.getOne(ctx, "employee_id = $1", employeeID)
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s`, userColumns, where)

	u, err := scanUser(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		if code, _ := database.PgErrorCode(err); code == database.CodeInvalidTextRepresentation {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, database.Classify("get user", err)
	}
	return u, nil
}

// ListByRole implements user.UserRepository.
func (r *userRepositoryImpl) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY employee_id ASC`

	rows, err := q.Query(ctx, query, role)
	if err != nil {
		return nil, database.Classify("list users", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("list users", err)
	}

	return users, nil
}

// LinkGoogleAccount implements user.UserRepository.
func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE users
		SET oauth_provider = $1, oauth_provider_id = $2, updated_at = NOW()
		WHERE email = lower($3)
		RETURNING ` + userColumns

	updated, err := scanUser(q.QueryRow(ctx, updateQuery, "google", googleID, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		if code, _ := database.PgErrorCode(err); code == database.CodeUniqueViolation {
			return user.User{}, user.ErrOAuthProviderIDExists
		}
		return user.User{}, database.Classify("link google account", err)
	}

	return updated, nil
}
