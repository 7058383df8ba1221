package attendance

import (
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
)

var Statuses = []string{string(StatusPresent), string(StatusLate), string(StatusAbsent), string(StatusHalfDay)}

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

// Attended reports whether the status counts towards team presence.
func (s Status) Attended() bool {
	return s == StatusPresent || s == StatusLate
}

// Attendance is the single record an employee has for one calendar day.
// Date is YYYY-MM-DD and the times are HH:MM wall-clock values in the
// configured attendance timezone.
type Attendance struct {
	ID           string
	UserID       string
	Date         string
	CheckInTime  *string
	CheckOutTime *string
	Status       Status
	TotalHours   float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a *Attendance) CheckedIn() bool {
	return a.CheckInTime != nil
}

func (a *Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}

// Row is an attendance record joined with the owning employee.
type Row struct {
	Attendance
	EmployeeID string
	Name       string
	Department string
}
