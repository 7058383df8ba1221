package attendance

import (
	"time"

	"github.com/teamclock/attendance-api/internal/pkg/validator"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 366
)

// NotCheckedInStatus is reported by GetToday when the employee has no record yet.
const NotCheckedInStatus = "Not Checked In"

type AttendanceResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"checkInTime"`
	CheckOutTime *string `json:"checkOutTime"`
	Status       string  `json:"status"`
	TotalHours   float64 `json:"totalHours"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func (a *Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		Date:         a.Date,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		Status:       string(a.Status),
		TotalHours:   a.TotalHours,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

type TodayResponse struct {
	CheckedIn  bool                `json:"checkedIn"`
	Status     string              `json:"status"`
	Attendance *AttendanceResponse `json:"attendance"`
}

// RowResponse is one line of the team table and of exported reports.
type RowResponse struct {
	EmployeeID   string  `json:"employeeId"`
	Name         string  `json:"name"`
	Department   string  `json:"department"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckInTime  *string `json:"checkInTime"`
	CheckOutTime *string `json:"checkOutTime"`
	TotalHours   float64 `json:"totalHours"`
}

func (r *Row) ToResponse() RowResponse {
	return RowResponse{
		EmployeeID:   r.EmployeeID,
		Name:         r.Name,
		Department:   r.Department,
		Date:         r.Date,
		Status:       string(r.Status),
		CheckInTime:  r.CheckInTime,
		CheckOutTime: r.CheckOutTime,
		TotalHours:   r.TotalHours,
	}
}

// HistoryFilter narrows an employee's own history. The month filter only
// applies when both Month and Year are set.
type HistoryFilter struct {
	Month *string `json:"month,omitempty"`
	Year  *string `json:"year,omitempty"`
	Limit int     `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateMonthYear(f.Month, f.Year)...)

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed " + validator.Itoa(MaxHistoryLimit),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Period returns the requested month when both parts were given.
func (f *HistoryFilter) Period() (year int, month time.Month, ok bool) {
	return parseMonthYear(f.Month, f.Year)
}

// SummaryRequest selects the month for MySummary. Missing parts default to
// the current month.
type SummaryRequest struct {
	Month *string `json:"month,omitempty"`
	Year  *string `json:"year,omitempty"`
}

func (r *SummaryRequest) Validate() error {
	if errs := validateMonthYear(r.Month, r.Year); len(errs) > 0 {
		return errs
	}
	return nil
}

// Resolve fills the missing parts from now.
func (r *SummaryRequest) Resolve(now time.Time) (int, time.Month) {
	year, month := now.Year(), now.Month()
	if r.Month != nil {
		if m, ok := validator.IsValidMonth(*r.Month); ok {
			month = time.Month(m)
		}
	}
	if r.Year != nil {
		if y, ok := validator.IsValidYear(*r.Year); ok {
			year = y
		}
	}
	return year, month
}

type SummaryResponse struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"halfDay"`
	TotalHours float64 `json:"totalHours"`
}

// RowFilter narrows the joined team rows. All fields are optional and ANDed.
type RowFilter struct {
	EmployeeID *string `json:"employeeId,omitempty"`
	Status     *string `json:"status,omitempty"`
	Date       *string `json:"date,omitempty"` // YYYY-MM-DD
	From       *string `json:"from,omitempty"` // YYYY-MM-DD, inclusive
	To         *string `json:"to,omitempty"`   // YYYY-MM-DD, inclusive
}

func (f *RowFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, late, absent, half-day",
		})
	}

	if f.EmployeeID != nil && validator.IsEmpty(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must not be empty",
		})
	}

	for _, d := range []struct {
		field string
		value *string
	}{{"date", f.Date}, {"from", f.From}, {"to", f.To}} {
		if d.value == nil {
			continue
		}
		if _, valid := validator.IsValidDate(*d.value); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   d.field,
				Message: d.field + " must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) == 0 && f.From != nil && f.To != nil && *f.From > *f.To {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must not be after to",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateMonthYear(month, year *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if month != nil {
		if _, ok := validator.IsValidMonth(*month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		}
	}
	if year != nil {
		if _, ok := validator.IsValidYear(*year); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be a four digit year",
			})
		}
	}
	return errs
}

func parseMonthYear(month, year *string) (int, time.Month, bool) {
	if month == nil || year == nil {
		return 0, 0, false
	}
	m, okM := validator.IsValidMonth(*month)
	y, okY := validator.IsValidYear(*year)
	if !okM || !okY {
		return 0, 0, false
	}
	return y, time.Month(m), true
}
