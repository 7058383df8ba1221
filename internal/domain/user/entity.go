package user

import "time"

type Role string

const (
	RoleManager  Role = "manager"  // Team-wide reads and exports
	RoleEmployee Role = "employee" // Own attendance only
)

func (r Role) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

// User is a roster entry. ID is internal; EmployeeID is the business code
// (EMP001) shown in reports.
type User struct {
	ID              string
	EmployeeID      string
	Name            string
	Email           string
	PasswordHash    *string
	Role            Role
	Department      string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsManager checks if user is manager
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Department: u.Department,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}
