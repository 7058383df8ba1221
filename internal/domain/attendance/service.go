package attendance

import (
	"context"
)

// AttendanceService is the daily check-in engine for a single employee.
type AttendanceService interface {
	CheckIn(ctx context.Context, userID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)
	GetToday(ctx context.Context, userID string) (TodayResponse, error)
	MyHistory(ctx context.Context, userID string, filter HistoryFilter) ([]AttendanceResponse, error)
	MySummary(ctx context.Context, userID string, req SummaryRequest) (SummaryResponse, error)
}

// EventPublisher receives check-in and check-out notifications.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

type EventType string

const (
	EventCheckedIn  EventType = "checked_in"
	EventCheckedOut EventType = "checked_out"
)

type Event struct {
	Type       EventType `json:"type"`
	UserID     string    `json:"userId"`
	EmployeeID string    `json:"employeeId"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Status     string    `json:"status"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	TotalHours float64   `json:"totalHours,omitempty"`
}
