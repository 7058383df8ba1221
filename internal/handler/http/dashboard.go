package http

import (
	"net/http"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/dashboard"
	"github.com/teamclock/attendance-api/internal/handler/http/response"
)

// DashboardHandler serves the manager views. Every endpoint takes an
// optional ?date=YYYY-MM-DD that defaults to today.
type DashboardHandler interface {
	AllRecords(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
	TeamSummary(w http.ResponseWriter, r *http.Request)
	WeeklyTrend(w http.ResponseWriter, r *http.Request)
	DepartmentBreakdown(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func dateParam(r *http.Request) string {
	if d := optionalQuery(r, "date"); d != nil {
		return *d
	}
	return ""
}

func (h *dashboardHandlerImpl) AllRecords(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RowFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Status:     optionalQuery(r, "status"),
		Date:       optionalQuery(r, "date"),
		From:       optionalQuery(r, "from"),
		To:         optionalQuery(r, "to"),
	}

	rows, err := h.dashboardService.AllRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

func (h *dashboardHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.TodayStatus(r.Context(), dateParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *dashboardHandlerImpl) TeamSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.TeamSummary(r.Context(), dateParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *dashboardHandlerImpl) WeeklyTrend(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.WeeklyTrend(r.Context(), dateParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *dashboardHandlerImpl) DepartmentBreakdown(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.DepartmentBreakdown(r.Context(), dateParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
