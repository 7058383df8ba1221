package memory

import (
	"context"
	"sort"

	"github.com/teamclock/attendance-api/internal/domain/dashboard"
)

type dashboardRepository struct {
	s *Store
}

func NewDashboardRepository(s *Store) dashboard.DashboardRepository {
	return &dashboardRepository{s: s}
}

func (r *dashboardRepository) CountAttendedByDay(ctx context.Context, from, to string) ([]dashboard.DayCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// One record per (user, date) means counting records counts distinct users.
	counts := make(map[string]int64)
	for key, a := range r.s.records {
		if key.date < from || key.date > to {
			continue
		}
		if _, ok := counts[key.date]; !ok {
			counts[key.date] = 0
		}
		if a.Status.Attended() {
			counts[key.date]++
		}
	}

	result := make([]dashboard.DayCount, 0, len(counts))
	for date, n := range counts {
		result = append(result, dashboard.DayCount{Date: date, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (r *dashboardRepository) CountAttendedByDepartment(ctx context.Context, date string) ([]dashboard.DepartmentCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[string]int64)
	for key, a := range r.s.records {
		if key.date != date {
			continue
		}
		u, ok := r.s.users[a.UserID]
		if !ok {
			continue
		}
		if _, seen := counts[u.Department]; !seen {
			counts[u.Department] = 0
		}
		if a.Status.Attended() {
			counts[u.Department]++
		}
	}

	result := make([]dashboard.DepartmentCount, 0, len(counts))
	for dept, n := range counts {
		result = append(result, dashboard.DepartmentCount{Department: dept, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Department < result[j].Department })
	return result, nil
}
