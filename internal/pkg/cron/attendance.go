package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/clock"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	clock          clock.Clock
	location       *time.Location
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	clk clock.Clock,
	location *time.Location,
) *AttendanceJobs {
	if location == nil {
		location = time.Local
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		clock:          clk,
		location:       location,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_absent_employees", interval, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees records an explicit absence for every employee who has
// no record for the previous day. Existing records are left alone, so the
// job is safe to run repeatedly.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := j.clock.Now().In(j.location).AddDate(0, 0, -1).Format(attendance.DateLayout)

	employees, err := j.userRepo.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return nil
	}

	userIDs := make([]string, 0, len(employees))
	for _, e := range employees {
		userIDs = append(userIDs, e.ID)
	}

	created, err := j.attendanceRepo.BulkCreateAbsences(ctx, userIDs, yesterday)
	if err != nil {
		return fmt.Errorf("failed to mark absences for %s: %w", yesterday, err)
	}

	if created > 0 {
		slog.Info("Cron: marked absent employees", "date", yesterday, "count", created)
	}
	return nil
}
