package dashboard

import (
	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/dashboard"
	"github.com/teamclock/attendance-api/internal/domain/user"
)

// Reconcile splits a day's joined rows into present and absent lists and adds
// every roster employee with no record of any status as an implicit absentee.
// Explicit absent rows come first and win over a synthesized entry for the
// same employee id. Half-day rows appear in neither list.
func Reconcile(rows []attendance.Row, roster []user.User) dashboard.TodayStatusResponse {
	present := make([]dashboard.RosterEntry, 0)
	absent := make([]dashboard.RosterEntry, 0)
	seen := make(map[string]struct{})

	for _, r := range rows {
		entry := dashboard.RosterEntry{
			EmployeeID: r.EmployeeID,
			Name:       r.Name,
			Department: r.Department,
			Status:     string(r.Status),
		}
		seen[r.EmployeeID] = struct{}{}
		switch {
		case r.Status.Attended():
			present = append(present, entry)
		case r.Status == attendance.StatusAbsent:
			absent = append(absent, entry)
		}
	}

	for _, u := range roster {
		if u.Role != user.RoleEmployee {
			continue
		}
		if _, ok := seen[u.EmployeeID]; ok {
			continue
		}
		absent = append(absent, dashboard.RosterEntry{
			EmployeeID: u.EmployeeID,
			Name:       u.Name,
			Department: u.Department,
			Status:     string(attendance.StatusAbsent),
		})
		seen[u.EmployeeID] = struct{}{}
	}

	return dashboard.TodayStatusResponse{
		PresentCount: len(present),
		AbsentCount:  len(absent),
		Present:      present,
		Absent:       absent,
	}
}
