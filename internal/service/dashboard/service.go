package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/dashboard"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/clock"
	"github.com/teamclock/attendance-api/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	attendanceRepository attendance.AttendanceRepository
	userRepository       user.UserRepository
	clock                clock.Clock
	location             *time.Location
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	clk clock.Clock,
	location *time.Location,
) dashboard.DashboardService {
	if location == nil {
		location = time.Local
	}
	return &DashboardServiceImpl{
		DashboardRepository:  repo,
		attendanceRepository: attendanceRepository,
		userRepository:       userRepository,
		clock:                clk,
		location:             location,
	}
}

// resolveDate parses YYYY-MM-DD, defaults to today
func (s *DashboardServiceImpl) resolveDate(date string) (time.Time, error) {
	if date == "" {
		now := s.clock.Now().In(s.location)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return parsed, nil
}

// AllRecords implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AllRecords(ctx context.Context, filter attendance.RowFilter) ([]attendance.RowResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.attendanceRepository.ListRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance rows: %w", err)
	}

	responses := make([]attendance.RowResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, rows[i].ToResponse())
	}
	return responses, nil
}

// WeeklyTrend implements dashboard.DashboardService. The result always has
// seven entries, Sunday first, with zero for days without records.
func (s *DashboardServiceImpl) WeeklyTrend(ctx context.Context, date string) ([]dashboard.TrendPoint, error) {
	ref, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	sunday := ref.AddDate(0, 0, -int(ref.Weekday()))
	from := sunday.Format(attendance.DateLayout)
	to := sunday.AddDate(0, 0, 6).Format(attendance.DateLayout)

	counts, err := s.CountAttendedByDay(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly attendance: %w", err)
	}
	byDate := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDate[c.Date] = c.Count
	}

	points := make([]dashboard.TrendPoint, 0, 7)
	for i := 0; i < 7; i++ {
		day := sunday.AddDate(0, 0, i)
		key := day.Format(attendance.DateLayout)
		points = append(points, dashboard.TrendPoint{
			Date:    key,
			Day:     day.Weekday().String()[:3],
			Present: byDate[key],
		})
	}
	return points, nil
}

// DepartmentBreakdown implements dashboard.DashboardService.
func (s *DashboardServiceImpl) DepartmentBreakdown(ctx context.Context, date string) ([]dashboard.DepartmentPoint, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	counts, err := s.CountAttendedByDepartment(ctx, day.Format(attendance.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to count department attendance: %w", err)
	}

	points := make([]dashboard.DepartmentPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, dashboard.DepartmentPoint{Name: c.Department, Value: c.Count})
	}
	return points, nil
}

// TeamSummary returns the weekly trend and department breakdown using parallel goroutines
func (s *DashboardServiceImpl) TeamSummary(ctx context.Context, date string) (*dashboard.TeamSummaryResponse, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	key := day.Format(attendance.DateLayout)

	var (
		weekly     []dashboard.TrendPoint
		department []dashboard.DepartmentPoint
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		weekly, err = s.WeeklyTrend(gCtx, key)
		return err
	})

	g.Go(func() error {
		var err error
		department, err = s.DepartmentBreakdown(gCtx, key)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.TeamSummaryResponse{
		Date:       key,
		Weekly:     weekly,
		Department: department,
	}, nil
}

// TodayStatus implements dashboard.DashboardService.
func (s *DashboardServiceImpl) TodayStatus(ctx context.Context, date string) (*dashboard.TodayStatusResponse, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	key := day.Format(attendance.DateLayout)

	var (
		rows   []attendance.Row
		roster []user.User
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rows, err = s.attendanceRepository.ListRows(gCtx, attendance.RowFilter{Date: &key})
		if err != nil {
			return fmt.Errorf("failed to list today's rows: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		roster, err = s.userRepository.ListByRole(gCtx, user.RoleEmployee)
		if err != nil {
			return fmt.Errorf("failed to list roster: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	status := Reconcile(rows, roster)
	status.Date = key
	return &status, nil
}
