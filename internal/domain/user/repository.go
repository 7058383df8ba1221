package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	// ListByRole returns users with the role ordered by employee id.
	ListByRole(ctx context.Context, role Role) ([]User, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}
