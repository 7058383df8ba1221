package dashboard

import (
	"context"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
)

// DashboardService defines the manager-facing team reads. An empty date means
// today according to the service clock.
type DashboardService interface {
	// AllRecords returns joined rows filtered by employee id, status and date
	AllRecords(ctx context.Context, filter attendance.RowFilter) ([]attendance.RowResponse, error)

	// WeeklyTrend returns the seven days of the Sunday-started week containing date
	WeeklyTrend(ctx context.Context, date string) ([]TrendPoint, error)

	// DepartmentBreakdown returns present counts per department for date
	DepartmentBreakdown(ctx context.Context, date string) ([]DepartmentPoint, error)

	// TeamSummary returns the weekly trend and department breakdown together using goroutines
	TeamSummary(ctx context.Context, date string) (*TeamSummaryResponse, error)

	// TodayStatus reconciles the day's records against the employee roster
	TodayStatus(ctx context.Context, date string) (*TodayStatusResponse, error)
}
