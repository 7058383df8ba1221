package attendance

import (
	"context"
)

// CheckIn is the write performed by a check-in.
type CheckIn struct {
	UserID string
	Date   string
	Time   string
	Status Status
	// KeepSeededStatus leaves the status of an existing record untouched.
	KeepSeededStatus bool
}

// AttendanceRepository is the per-day attendance store. There is at most one
// record per (user, date); writes are upserts, never blind inserts.
type AttendanceRepository interface {
	// GetByUserAndDate returns nil, nil when the user has no record that day.
	GetByUserAndDate(ctx context.Context, userID, date string) (*Attendance, error)

	// UpsertCheckIn creates the day's record or fills in a record that has no
	// check-in yet. It fails with ErrAlreadyCheckedIn when the stored record
	// already has a check-in time.
	UpsertCheckIn(ctx context.Context, in CheckIn) (Attendance, error)

	// CompleteCheckOut sets the check-out time and hours on a checked-in,
	// not yet checked-out record. Fails with ErrNotCheckedIn or
	// ErrAlreadyCheckedOut otherwise.
	CompleteCheckOut(ctx context.Context, userID, date, checkOutTime string, totalHours float64) (Attendance, error)

	// Upsert writes a complete record, replacing any record for the same day.
	Upsert(ctx context.Context, a Attendance) (Attendance, error)

	// ListByUser returns the user's records between from and to inclusive
	// (either may be empty), newest first, at most limit rows (0 = no limit).
	ListByUser(ctx context.Context, userID, from, to string, limit int) ([]Attendance, error)

	// ListRows returns records joined with their employee, newest first with
	// ties ordered by employee id.
	ListRows(ctx context.Context, filter RowFilter) ([]Row, error)

	// BulkCreateAbsences inserts an absent record for each user without a
	// record on date and returns how many were created.
	BulkCreateAbsences(ctx context.Context, userIDs []string, date string) (int64, error)
}
