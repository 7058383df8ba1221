// Package export renders attendance rows as CSV or XLSX reports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

var Columns = []string{"Employee ID", "Name", "Department", "Date", "Status", "Check In", "Check Out", "Hours"}

// Report is the data rendered into an export file.
type Report struct {
	From       string
	To         string
	EmployeeID string
	Rows       []attendance.RowResponse
}

// Totals is the per-status breakdown shown on the summary sheet.
type Totals struct {
	Present    int
	Late       int
	Absent     int
	HalfDay    int
	TotalHours float64
}

func (r Report) Totals() Totals {
	var t Totals
	for _, row := range r.Rows {
		switch attendance.Status(row.Status) {
		case attendance.StatusPresent:
			t.Present++
		case attendance.StatusLate:
			t.Late++
		case attendance.StatusAbsent:
			t.Absent++
		case attendance.StatusHalfDay:
			t.HalfDay++
		}
		t.TotalHours += row.TotalHours
	}
	t.TotalHours = math.Round(t.TotalHours*100) / 100
	return t
}

func record(row attendance.RowResponse) []string {
	return []string{
		row.EmployeeID,
		row.Name,
		row.Department,
		row.Date,
		row.Status,
		deref(row.CheckInTime),
		deref(row.CheckOutTime),
		strconv.FormatFloat(row.TotalHours, 'f', 2, 64),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WriteCSV writes a header line followed by one line per row.
func WriteCSV(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range report.Rows {
		if err := cw.Write(record(row)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const (
	attendanceSheet = "Attendance"
	summarySheet    = "Summary"
)

// WriteXLSX writes a workbook with the rows on one sheet and per-status
// totals on a second.
func WriteXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, col := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(attendanceSheet, cell, col); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Columns))
	if err := f.SetCellStyle(attendanceSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range report.Rows {
		r := i + 2
		values := []interface{}{
			row.EmployeeID,
			row.Name,
			row.Department,
			row.Date,
			row.Status,
			deref(row.CheckInTime),
			deref(row.CheckOutTime),
			row.TotalHours,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			if err := f.SetCellValue(attendanceSheet, cell, v); err != nil {
				return err
			}
		}
	}

	f.SetColWidth(attendanceSheet, "A", "A", 14)
	f.SetColWidth(attendanceSheet, "B", "C", 22)
	f.SetColWidth(attendanceSheet, "D", "H", 12)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	totals := report.Totals()
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"From", report.From},
		{"To", report.To},
		{"Employee", employeeLabel(report.EmployeeID)},
		{"Records", len(report.Rows)},
		{"Present", totals.Present},
		{"Late", totals.Late},
		{"Absent", totals.Absent},
		{"Half Day", totals.HalfDay},
		{"Total Hours", totals.TotalHours},
	}
	for i, line := range summary {
		r := i + 1
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), line[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), line[1])
	}
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	f.SetColWidth(summarySheet, "A", "A", 18)
	f.SetColWidth(summarySheet, "B", "B", 16)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func employeeLabel(id string) string {
	if id == "" {
		return "All employees"
	}
	return id
}
