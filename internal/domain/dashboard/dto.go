package dashboard

// TrendPoint is one day of the weekly chart.
type TrendPoint struct {
	Date    string `json:"date"` // Format: "YYYY-MM-DD"
	Day     string `json:"day"`  // Sun, Mon, ...
	Present int64  `json:"present"`
}

// DepartmentPoint is one slice of the department chart.
type DepartmentPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// TeamSummaryResponse is the combined response for the team charts
type TeamSummaryResponse struct {
	Date       string            `json:"date"`
	Weekly     []TrendPoint      `json:"weekly"`
	Department []DepartmentPoint `json:"department"`
}

// RosterEntry is an employee in the present or absent list of TodayStatus.
type RosterEntry struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

type TodayStatusResponse struct {
	Date         string        `json:"date"`
	PresentCount int           `json:"presentCount"`
	AbsentCount  int           `json:"absentCount"`
	Present      []RosterEntry `json:"present"`
	Absent       []RosterEntry `json:"absent"`
}
