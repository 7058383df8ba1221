package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/clock"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	userRepository user.UserRepository
	clock          clock.Clock
	rules          attendance.Rules
	publisher      attendance.EventPublisher
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	clk clock.Clock,
	rules attendance.Rules,
	publisher attendance.EventPublisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		userRepository:       userRepository,
		clock:                clk,
		rules:                rules,
		publisher:            publisher,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	now := s.rules.In(s.clock.Now())
	today := now.Format(attendance.DateLayout)

	employee, err := s.employee(ctx, userID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil && existing.CheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	record, err := s.AttendanceRepository.UpsertCheckIn(ctx, attendance.CheckIn{
		UserID:           userID,
		Date:             today,
		Time:             now.Format(attendance.TimeLayout),
		Status:           s.rules.StatusAt(now),
		KeepSeededStatus: s.rules.SeededPolicy == attendance.SeededPreserve,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) || errors.Is(err, attendance.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	slog.Info("Employee checked in", "employee_id", employee.EmployeeID, "date", record.Date, "time", *record.CheckInTime, "status", record.Status)
	s.publish(ctx, attendance.EventCheckedIn, employee, record)

	return record.ToResponse(), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	now := s.rules.In(s.clock.Now())
	today := now.Format(attendance.DateLayout)

	employee, err := s.employee(ctx, userID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil || !existing.CheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	hours, err := WorkedHours(*existing.CheckInTime, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.CompleteCheckOut(ctx, userID, today, now.Format(attendance.TimeLayout), hours)
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) || errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	slog.Info("Employee checked out", "employee_id", employee.EmployeeID, "date", record.Date, "total_hours", record.TotalHours)
	s.publish(ctx, attendance.EventCheckedOut, employee, record)

	return record.ToResponse(), nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	today := s.rules.In(s.clock.Now()).Format(attendance.DateLayout)

	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.TodayResponse{Status: attendance.NotCheckedInStatus}, nil
	}

	resp := record.ToResponse()
	return attendance.TodayResponse{
		CheckedIn:  record.CheckedIn(),
		Status:     string(record.Status),
		Attendance: &resp,
	}, nil
}

// MyHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MyHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var from, to string
	if year, month, ok := filter.Period(); ok {
		from, to = monthRange(year, month)
	}

	records, err := s.AttendanceRepository.ListByUser(ctx, userID, from, to, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, records[i].ToResponse())
	}
	return responses, nil
}

// MySummary implements attendance.AttendanceService. Days without a record
// are not counted as absent here; only explicit absent records are.
func (s *AttendanceServiceImpl) MySummary(ctx context.Context, userID string, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	year, month := req.Resolve(s.rules.In(s.clock.Now()))
	from, to := monthRange(year, month)

	records, err := s.AttendanceRepository.ListByUser(ctx, userID, from, to, 0)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to list monthly attendance: %w", err)
	}

	var summary attendance.SummaryResponse
	var hours float64
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusAbsent:
			summary.Absent++
		case attendance.StatusLate:
			summary.Late++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		}
		hours += r.TotalHours
	}
	summary.TotalHours = roundTotal(hours)

	return summary, nil
}

func (s *AttendanceServiceImpl) employee(ctx context.Context, userID string) (user.User, error) {
	u, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, attendance.ErrEmployeeNotFound
		}
		return user.User{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return u, nil
}

func (s *AttendanceServiceImpl) publish(ctx context.Context, typ attendance.EventType, employee user.User, record attendance.Attendance) {
	if s.publisher == nil {
		return
	}
	event := attendance.Event{
		Type:       typ,
		UserID:     employee.ID,
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
		Department: employee.Department,
		Status:     string(record.Status),
		Date:       record.Date,
		TotalHours: record.TotalHours,
	}
	switch typ {
	case attendance.EventCheckedIn:
		event.Time = *record.CheckInTime
	case attendance.EventCheckedOut:
		event.Time = *record.CheckOutTime
	}
	s.publisher.Publish(ctx, event)
}
