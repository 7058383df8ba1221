package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/teamclock/attendance-api/internal/domain/attendance"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.records[recordKey{userID, date}]
	if !ok {
		return nil, nil
	}
	a = cloneAttendance(a)
	return &a, nil
}

func (r *attendanceRepository) UpsertCheckIn(ctx context.Context, in attendance.CheckIn) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[in.UserID]; !ok {
		return attendance.Attendance{}, attendance.ErrEmployeeNotFound
	}

	now := r.s.now()
	key := recordKey{in.UserID, in.Date}
	a, exists := r.s.records[key]
	if exists && a.CheckInTime != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	if !exists {
		a = attendance.Attendance{
			ID:        uuid.NewString(),
			UserID:    in.UserID,
			Date:      in.Date,
			CreatedAt: now,
		}
	}

	checkIn := in.Time
	a.CheckInTime = &checkIn
	if !exists || !in.KeepSeededStatus {
		a.Status = in.Status
	}
	a.UpdatedAt = now
	r.s.records[key] = a

	return cloneAttendance(a), nil
}

func (r *attendanceRepository) CompleteCheckOut(ctx context.Context, userID, date, checkOutTime string, totalHours float64) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := recordKey{userID, date}
	a, ok := r.s.records[key]
	if !ok || a.CheckInTime == nil {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	if a.CheckOutTime != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	out := checkOutTime
	a.CheckOutTime = &out
	a.TotalHours = totalHours
	a.UpdatedAt = r.s.now()
	r.s.records[key] = a

	return cloneAttendance(a), nil
}

func (r *attendanceRepository) Upsert(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[rec.UserID]; !ok {
		return attendance.Attendance{}, attendance.ErrEmployeeNotFound
	}

	now := r.s.now()
	key := recordKey{rec.UserID, rec.Date}
	if existing, ok := r.s.records[key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	r.s.records[key] = cloneAttendance(rec)

	return cloneAttendance(rec), nil
}

func (r *attendanceRepository) ListByUser(ctx context.Context, userID, from, to string, limit int) ([]attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := make([]attendance.Attendance, 0)
	for key, a := range r.s.records {
		if key.userID != userID {
			continue
		}
		if (from != "" && a.Date < from) || (to != "" && a.Date > to) {
			continue
		}
		records = append(records, cloneAttendance(a))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *attendanceRepository) ListRows(ctx context.Context, filter attendance.RowFilter) ([]attendance.Row, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]attendance.Row, 0)
	for _, a := range r.s.records {
		u, ok := r.s.users[a.UserID]
		if !ok {
			continue
		}
		if filter.EmployeeID != nil && u.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		if filter.Date != nil && a.Date != *filter.Date {
			continue
		}
		if filter.From != nil && a.Date < *filter.From {
			continue
		}
		if filter.To != nil && a.Date > *filter.To {
			continue
		}
		rows = append(rows, attendance.Row{
			Attendance: cloneAttendance(a),
			EmployeeID: u.EmployeeID,
			Name:       u.Name,
			Department: u.Department,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
	return rows, nil
}

func (r *attendanceRepository) BulkCreateAbsences(ctx context.Context, userIDs []string, date string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range userIDs {
		if _, ok := r.s.users[id]; !ok {
			return 0, attendance.ErrEmployeeNotFound
		}
	}

	now := r.s.now()
	var created int64
	for _, id := range userIDs {
		key := recordKey{id, date}
		if _, exists := r.s.records[key]; exists {
			continue
		}
		r.s.records[key] = attendance.Attendance{
			ID:        uuid.NewString(),
			UserID:    id,
			Date:      date,
			Status:    attendance.StatusAbsent,
			CreatedAt: now,
			UpdatedAt: now,
		}
		created++
	}
	return created, nil
}
