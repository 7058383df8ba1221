package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/teamclock/attendance-api/internal/domain/user"
)

type userRepository struct {
	s *Store
}

func NewUserRepository(s *Store) user.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, newUser.Email) {
			return user.User{}, user.ErrEmailExists
		}
		if u.EmployeeID == newUser.EmployeeID {
			return user.User{}, user.ErrEmployeeIDExists
		}
	}

	if newUser.ID == "" {
		newUser.ID = uuid.NewString()
	}
	now := r.s.now()
	newUser.CreatedAt = now
	newUser.UpdatedAt = now
	r.s.users[newUser.ID] = cloneUser(newUser)

	return cloneUser(newUser), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.find(func(u user.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	return r.find(func(u user.User) bool { return u.EmployeeID == employeeID })
}

func (r *userRepository) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]user.User, 0)
	for _, u := range r.s.users {
		if u.Role == role {
			users = append(users, cloneUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].EmployeeID < users[j].EmployeeID })
	return users, nil
}

func (r *userRepository) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var target *user.User
	for id, u := range r.s.users {
		if u.OAuthProviderID != nil && *u.OAuthProviderID == googleID && !strings.EqualFold(u.Email, email) {
			return user.User{}, user.ErrOAuthProviderIDExists
		}
		if strings.EqualFold(u.Email, email) {
			found := r.s.users[id]
			target = &found
		}
	}
	if target == nil {
		return user.User{}, user.ErrUserNotFound
	}

	provider := "google"
	target.OAuthProvider = &provider
	target.OAuthProviderID = &googleID
	target.UpdatedAt = r.s.now()
	r.s.users[target.ID] = cloneUser(*target)

	return cloneUser(*target), nil
}

func (r *userRepository) find(match func(user.User) bool) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}
