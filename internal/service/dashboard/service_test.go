package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/dashboard"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/clock"
	"github.com/teamclock/attendance-api/internal/pkg/validator"
	"github.com/teamclock/attendance-api/internal/repository/memory"
)

type fixture struct {
	svc   dashboard.DashboardService
	repo  attendance.AttendanceRepository
	users map[string]user.User
}

func strPtr(s string) *string { return &s }

// newFixture seeds the demo roster. The clock reads Friday 2025-11-28.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	repo := memory.NewAttendanceRepository(store)

	users := make(map[string]user.User)
	for _, u := range []user.User{
		{EmployeeID: "MGR001", Name: "Manoj Manager", Email: "manager@test.com", Role: user.RoleManager, Department: "CSE"},
		{EmployeeID: "EMP001", Name: "John Doe", Email: "employee1@test.com", Role: user.RoleEmployee, Department: "Engineering"},
		{EmployeeID: "EMP002", Name: "Alice", Email: "employee2@test.com", Role: user.RoleEmployee, Department: "HR"},
		{EmployeeID: "EMP003", Name: "Bob", Email: "employee3@test.com", Role: user.RoleEmployee, Department: "Sales"},
	} {
		created, err := userRepo.Create(ctx, u)
		require.NoError(t, err)
		users[u.EmployeeID] = created
	}

	clk := clock.NewFixed(time.Date(2025, 11, 28, 12, 0, 0, 0, time.UTC))
	svc := NewDashboardService(memory.NewDashboardRepository(store), repo, userRepo, clk, time.UTC)

	return &fixture{svc: svc, repo: repo, users: users}
}

func (f *fixture) seed(t *testing.T, employeeID, date string, status attendance.Status) {
	t.Helper()
	_, err := f.repo.Upsert(context.Background(), attendance.Attendance{
		UserID: f.users[employeeID].ID,
		Date:   date,
		Status: status,
	})
	require.NoError(t, err)
}

func TestDashboardService_WeeklyTrend_AlwaysSevenDays(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "EMP001", "2025-11-24", attendance.StatusPresent)
	f.seed(t, "EMP002", "2025-11-24", attendance.StatusLate)
	f.seed(t, "EMP003", "2025-11-24", attendance.StatusAbsent)
	f.seed(t, "EMP001", "2025-11-28", attendance.StatusPresent)
	f.seed(t, "EMP001", "2025-11-30", attendance.StatusPresent) // next week

	points, err := f.svc.WeeklyTrend(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, points, 7)

	assert.Equal(t, dashboard.TrendPoint{Date: "2025-11-23", Day: "Sun", Present: 0}, points[0])
	assert.Equal(t, dashboard.TrendPoint{Date: "2025-11-24", Day: "Mon", Present: 2}, points[1])
	assert.Equal(t, int64(1), points[5].Present)
	assert.Equal(t, dashboard.TrendPoint{Date: "2025-11-29", Day: "Sat", Present: 0}, points[6])
}

func TestDashboardService_WeeklyTrend_SundayReference(t *testing.T) {
	f := newFixture(t)

	points, err := f.svc.WeeklyTrend(context.Background(), "2025-11-30")
	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, "2025-11-30", points[0].Date)
	assert.Equal(t, "2025-12-06", points[6].Date)
}

func TestDashboardService_WeeklyTrend_InvalidDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.WeeklyTrend(context.Background(), "28/11/2025")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestDashboardService_DepartmentBreakdown(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "EMP001", "2025-11-28", attendance.StatusPresent)
	f.seed(t, "EMP003", "2025-11-28", attendance.StatusLate)

	points, err := f.svc.DepartmentBreakdown(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []dashboard.DepartmentPoint{
		{Name: "Engineering", Value: 1},
		{Name: "Sales", Value: 1},
	}, points, "departments without records are omitted")
}

func TestDashboardService_TeamSummary(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "EMP001", "2025-11-28", attendance.StatusPresent)
	f.seed(t, "EMP002", "2025-11-28", attendance.StatusAbsent)

	summary, err := f.svc.TeamSummary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-28", summary.Date)
	assert.Len(t, summary.Weekly, 7)
	assert.Equal(t, int64(1), summary.Weekly[5].Present)
	assert.Equal(t, []dashboard.DepartmentPoint{
		{Name: "Engineering", Value: 1},
		{Name: "HR", Value: 0},
	}, summary.Department)
}

func TestDashboardService_TodayStatus(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "EMP001", "2025-11-28", attendance.StatusPresent)
	f.seed(t, "EMP002", "2025-11-28", attendance.StatusAbsent)
	f.seed(t, "EMP003", "2025-11-27", attendance.StatusPresent)

	status, err := f.svc.TodayStatus(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "2025-11-28", status.Date)
	assert.Equal(t, 1, status.PresentCount)
	assert.Equal(t, 2, status.AbsentCount)
	require.Len(t, status.Absent, 2)
	assert.Equal(t, "EMP002", status.Absent[0].EmployeeID)
	assert.Equal(t, dashboard.RosterEntry{EmployeeID: "EMP003", Name: "Bob", Department: "Sales", Status: "absent"}, status.Absent[1])
}

func TestDashboardService_TodayStatus_HalfDayIsNotSynthesized(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "EMP001", "2025-11-28", attendance.StatusLate)
	f.seed(t, "EMP002", "2025-11-28", attendance.StatusHalfDay)

	status, err := f.svc.TodayStatus(context.Background(), "2025-11-28")
	require.NoError(t, err)

	assert.Equal(t, 1, status.PresentCount)
	require.Len(t, status.Absent, 1)
	assert.Equal(t, "EMP003", status.Absent[0].EmployeeID)
	for _, e := range append(status.Present, status.Absent...) {
		assert.NotEqual(t, "EMP002", e.EmployeeID)
	}
}

func TestDashboardService_AllRecords(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "EMP001", "2025-11-27", attendance.StatusLate)
	f.seed(t, "EMP002", "2025-11-28", attendance.StatusAbsent)
	f.seed(t, "EMP001", "2025-11-28", attendance.StatusPresent)

	rows, err := f.svc.AllRecords(context.Background(), attendance.RowFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "EMP001", rows[0].EmployeeID)
	assert.Equal(t, "2025-11-28", rows[0].Date)
	assert.Equal(t, "EMP002", rows[1].EmployeeID)
	assert.Equal(t, "2025-11-27", rows[2].Date)

	rows, err = f.svc.AllRecords(context.Background(), attendance.RowFilter{Status: strPtr("late")})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "John Doe", rows[0].Name)

	_, err = f.svc.AllRecords(context.Background(), attendance.RowFilter{Status: strPtr("on_leave")})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
