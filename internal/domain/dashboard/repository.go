package dashboard

import (
	"context"
)

// DayCount is the number of distinct employees present or late on Date.
type DayCount struct {
	Date  string
	Count int64
}

// DepartmentCount is the number of present or late records in a department.
type DepartmentCount struct {
	Department string
	Count      int64
}

// DashboardRepository defines the aggregate reads behind the team views.
type DashboardRepository interface {
	// CountAttendedByDay returns one entry per date in [from, to] that has at
	// least one record. Dates without records are omitted.
	CountAttendedByDay(ctx context.Context, from, to string) ([]DayCount, error)

	// CountAttendedByDepartment groups the day's records by employee
	// department, ordered by department name.
	CountAttendedByDepartment(ctx context.Context, date string) ([]DepartmentCount, error)
}
