package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStoreUnavailable reports that the store could not be reached or timed out.
// Callers may retry; nothing was written.
var ErrStoreUnavailable = errors.New("store unavailable")

// Postgres SQLSTATE codes the repositories react to.
const (
	CodeUniqueViolation           = "23505"
	CodeForeignKeyViolation       = "23503"
	CodeInvalidTextRepresentation = "22P02"
)

// IsUnavailable reports whether err looks like a lost connection or timeout
// rather than a statement failure.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}

// Classify wraps err with ErrStoreUnavailable when it is a connectivity
// failure, otherwise it only adds the operation name.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsUnavailable(err) && !errors.Is(err, ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// PgErrorCode returns the SQLSTATE of a Postgres error, or "".
func PgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
