// Package memory is an in-process implementation of the repositories, used
// by tests and by STORE_DRIVER=memory.
package memory

import (
	"sync"
	"time"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/user"
)

type recordKey struct {
	userID string
	date   string
}

// Store holds users and attendance records behind one lock so that the
// repositories built on it see a consistent view, like tables in one database.
type Store struct {
	mu      sync.RWMutex
	users   map[string]user.User
	records map[recordKey]attendance.Attendance
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]user.User),
		records: make(map[recordKey]attendance.Attendance),
		now:     time.Now,
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneAttendance(a attendance.Attendance) attendance.Attendance {
	a.CheckInTime = cloneString(a.CheckInTime)
	a.CheckOutTime = cloneString(a.CheckOutTime)
	return a
}

func cloneUser(u user.User) user.User {
	u.PasswordHash = cloneString(u.PasswordHash)
	u.OAuthProvider = cloneString(u.OAuthProvider)
	u.OAuthProviderID = cloneString(u.OAuthProviderID)
	return u
}
