package attendance

import (
	"errors"

	"github.com/teamclock/attendance-api/internal/pkg/database"
)

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("already checked out today")

	// ErrEmployeeNotFound is returned when the acting identity or a requested
	// employee id is not on the roster.
	ErrEmployeeNotFound = errors.New("employee not found")

	ErrStoreUnavailable = database.ErrStoreUnavailable
)
