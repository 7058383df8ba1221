package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/pkg/database"
)

const attendanceColumns = `a.id, a.user_id, to_char(a.date, 'YYYY-MM-DD'), a.check_in_time, a.check_out_time,
		a.status, a.total_hours::float8, a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row, extra ...any) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []any{
		&att.ID, &att.UserID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
		&att.Status, &att.TotalHours, &att.CreatedAt, &att.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return att, err
}

// mapWriteError turns constraint failures on attendance writes into domain errors.
func mapWriteError(op string, err error) error {
	switch code, _ := database.PgErrorCode(err); code {
	case database.CodeForeignKeyViolation, database.CodeInvalidTextRepresentation:
		return attendance.ErrEmployeeNotFound
	}
	return database.Classify(op, err)
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.user_id = $1 AND a.date = $2::date`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if code, _ := database.PgErrorCode(err); code == database.CodeInvalidTextRepresentation {
			return nil, nil
		}
		return nil, database.Classify("get attendance", err)
	}
	return &att, nil
}

// UpsertCheckIn implements attendance.AttendanceRepository. The conflict
// branch only fires for a record without a check-in, so a returned no-rows
// means the day is already checked in.
func (a *attendanceRepository) UpsertCheckIn(ctx context.Context, in attendance.CheckIn) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances AS a (user_id, date, check_in_time, status)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (user_id, date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time,
			status = CASE WHEN $5::boolean THEN a.status ELSE EXCLUDED.status END,
			updated_at = NOW()
		WHERE a.check_in_time IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, in.UserID, in.Date, in.Time, in.Status, in.KeepSeededStatus))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, mapWriteError("check in", err)
	}
	return att, nil
}

// CompleteCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CompleteCheckOut(ctx context.Context, userID, date, checkOutTime string, totalHours float64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances AS a
		SET check_out_time = $3, total_hours = $4, updated_at = NOW()
		WHERE a.user_id = $1 AND a.date = $2::date
		  AND a.check_in_time IS NOT NULL
		  AND a.check_out_time IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date, checkOutTime, totalHours))
	if err == nil {
		return att, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, mapWriteError("check out", err)
	}

	// Nothing was updated; read the record to report why.
	existing, getErr := a.GetByUserAndDate(ctx, userID, date)
	if getErr != nil {
		return attendance.Attendance{}, getErr
	}
	if existing == nil || !existing.CheckedIn() {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances AS a (user_id, date, check_in_time, check_out_time, status, total_hours)
		VALUES ($1, $2::date, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time,
			check_out_time = EXCLUDED.check_out_time,
			status = EXCLUDED.status,
			total_hours = EXCLUDED.total_hours,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query,
		rec.UserID, rec.Date, rec.CheckInTime, rec.CheckOutTime, rec.Status, rec.TotalHours,
	))
	if err != nil {
		return attendance.Attendance{}, mapWriteError("upsert attendance", err)
	}
	return att, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID, from, to string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	where := "a.user_id = $1"
	args := []any{userID}
	argIdx := 2

	if from != "" {
		where += fmt.Sprintf(" AND a.date >= $%d::date", argIdx)
		args = append(args, from)
		argIdx++
	}
	if to != "" {
		where += fmt.Sprintf(" AND a.date <= $%d::date", argIdx)
		args = append(args, to)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM attendances a WHERE %s ORDER BY a.date DESC`, attendanceColumns, where)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		if code, _ := database.PgErrorCode(err); code == database.CodeInvalidTextRepresentation {
			return []attendance.Attendance{}, nil
		}
		return nil, database.Classify("list attendance", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("list attendance", err)
	}
	return records, nil
}

// ListRows implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRows(ctx context.Context, filter attendance.RowFilter) ([]attendance.Row, error) {
	q := GetQuerier(ctx, a.db)

	where := "1=1"
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND u.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Date != nil {
		where += fmt.Sprintf(" AND a.date = $%d::date", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND a.date >= $%d::date", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND a.date <= $%d::date", argIdx)
		args = append(args, *filter.To)
	}

	query := fmt.Sprintf(`
		SELECT %s, u.employee_id, u.name, u.department
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date DESC, u.employee_id ASC
	`, attendanceColumns, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Classify("list attendance rows", err)
	}
	defer rows.Close()

	result := make([]attendance.Row, 0)
	for rows.Next() {
		var r attendance.Row
		att, err := scanAttendance(rows, &r.EmployeeID, &r.Name, &r.Department)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		r.Attendance = att
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("list attendance rows", err)
	}
	return result, nil
}

// BulkCreateAbsences implements attendance.AttendanceRepository.
func (a *attendanceRepository) BulkCreateAbsences(ctx context.Context, userIDs []string, date string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (user_id, date, status)
		SELECT id::uuid, $2::date, $3
		FROM unnest($1::text[]) AS id
		ON CONFLICT (user_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, userIDs, date, attendance.StatusAbsent)
	if err != nil {
		return 0, mapWriteError("create absences", err)
	}
	return tag.RowsAffected(), nil
}
