package postgresql

import (
	"context"
	"fmt"

	"github.com/teamclock/attendance-api/internal/domain/dashboard"
	"github.com/teamclock/attendance-api/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountAttendedByDay counts distinct present or late employees per recorded date.
func (r *dashboardRepositoryImpl) CountAttendedByDay(ctx context.Context, from, to string) ([]dashboard.DayCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT 
			to_char(date, 'YYYY-MM-DD') AS day,
			COUNT(DISTINCT user_id) FILTER (WHERE status IN ('present', 'late')) AS attended
		FROM attendances
		WHERE date BETWEEN $1::date AND $2::date
		GROUP BY date
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, database.Classify("count attended by day", err)
	}
	defer rows.Close()

	counts := make([]dashboard.DayCount, 0, 7)
	for rows.Next() {
		var c dashboard.DayCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan day count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("count attended by day", err)
	}
	return counts, nil
}

// CountAttendedByDepartment returns present or late counts per department for one date.
func (r *dashboardRepositoryImpl) CountAttendedByDepartment(ctx context.Context, date string) ([]dashboard.DepartmentCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT 
			u.department,
			COUNT(*) FILTER (WHERE a.status IN ('present', 'late')) AS attended
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.date = $1::date
		GROUP BY u.department
		ORDER BY u.department ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, database.Classify("count attended by department", err)
	}
	defer rows.Close()

	counts := make([]dashboard.DepartmentCount, 0)
	for rows.Next() {
		var c dashboard.DepartmentCount
		if err := rows.Scan(&c.Department, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("count attended by department", err)
	}
	return counts, nil
}
