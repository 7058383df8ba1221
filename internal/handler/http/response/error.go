package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/auth"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Store errors
	case errors.Is(err, attendance.ErrStoreUnavailable):
		slog.Warn("store unavailable", "error", err)
		ServiceUnavailable(w, "Attendance store is temporarily unavailable, please retry")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrGoogleAccountUnknown):
		Forbidden(w, "No employee is registered with this Google account")
	case errors.Is(err, auth.ErrGoogleLoginDisabled):
		NotFound(w, "Google login is not configured")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already registered")
	case errors.Is(err, user.ErrOAuthProviderIDExists):
		Conflict(w, "Google account already linked to another employee")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in today", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
