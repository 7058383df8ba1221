package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/report"
	"github.com/teamclock/attendance-api/internal/domain/user"
	"github.com/teamclock/attendance-api/internal/pkg/clock"
	"github.com/teamclock/attendance-api/internal/pkg/export"
	"github.com/teamclock/attendance-api/internal/pkg/validator"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportServiceImpl struct {
	attendanceRepository attendance.AttendanceRepository
	userRepository       user.UserRepository
	clock                clock.Clock
	location             *time.Location
}

func NewReportService(
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	clk clock.Clock,
	location *time.Location,
) report.ReportService {
	if location == nil {
		location = time.Local
	}
	return &ReportServiceImpl{
		attendanceRepository: attendanceRepository,
		userRepository:       userRepository,
		clock:                clk,
		location:             location,
	}
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}

	from, to := s.period(req)
	if from > to {
		return report.File{}, validator.ValidationErrors{{
			Field:   "from",
			Message: "from must not be after to",
		}}
	}

	filter := attendance.RowFilter{From: &from, To: &to}
	employeeID := ""
	if req.EmployeeID != nil {
		if _, err := s.userRepository.GetByEmployeeID(ctx, *req.EmployeeID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return report.File{}, attendance.ErrEmployeeNotFound
			}
			return report.File{}, fmt.Errorf("failed to get employee: %w", err)
		}
		employeeID = *req.EmployeeID
		filter.EmployeeID = req.EmployeeID
	}

	rows, err := s.attendanceRepository.ListRows(ctx, filter)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list report rows: %w", err)
	}

	data := export.Report{From: from, To: to, EmployeeID: employeeID, Rows: make([]attendance.RowResponse, 0, len(rows))}
	for i := range rows {
		data.Rows = append(data.Rows, rows[i].ToResponse())
	}

	var buf bytes.Buffer
	file := report.File{Filename: filename(from, to, employeeID, req.Format)}
	switch req.Format {
	case report.FormatXLSX:
		err = export.WriteXLSX(&buf, data)
		file.ContentType = contentTypeXLSX
	default:
		err = export.WriteCSV(&buf, data)
		file.ContentType = contentTypeCSV
	}
	if err != nil {
		return report.File{}, fmt.Errorf("%w: %s: %w", report.ErrReportGenerationFailed, req.Format, err)
	}
	file.Content = buf.Bytes()

	slog.Info("Attendance report exported", "format", req.Format, "from", from, "to", to, "employee_id", employeeID, "rows", len(rows))
	return file, nil
}

// period fills a missing bound from the current month.
func (s *ReportServiceImpl) period(req report.ExportRequest) (string, string) {
	now := s.clock.Now().In(s.location)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	from := first.Format(attendance.DateLayout)
	to := first.AddDate(0, 1, -1).Format(attendance.DateLayout)
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}
	return from, to
}

func filename(from, to, employeeID string, format report.Format) string {
	name := fmt.Sprintf("attendance_%s_%s", from, to)
	if employeeID != "" {
		name += "_" + employeeID
	}
	return name + "." + string(format)
}
