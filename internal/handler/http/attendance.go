package http

import (
	"net/http"
	"strconv"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/domain/auth"
	"github.com/teamclock/attendance-api/internal/handler/http/response"
	"github.com/teamclock/attendance-api/internal/pkg/validator"
)

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(r)
	if !ok {
		response.HandleError(w, auth.ErrUnauthorized)
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(r)
	if !ok {
		response.HandleError(w, auth.ErrUnauthorized)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(r)
	if !ok {
		response.HandleError(w, auth.ErrUnauthorized)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// MyHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(r)
	if !ok {
		response.HandleError(w, auth.ErrUnauthorized)
		return
	}

	filter := attendance.HistoryFilter{
		Month: optionalQuery(r, "month"),
		Year:  optionalQuery(r, "year"),
	}
	if limit := optionalQuery(r, "limit"); limit != nil {
		n, err := strconv.Atoi(*limit)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{Field: "limit", Message: "limit must be a number"}})
			return
		}
		filter.Limit = n
	}

	result, err := h.attendanceService.MyHistory(r.Context(), claims.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(r)
	if !ok {
		response.HandleError(w, auth.ErrUnauthorized)
		return
	}

	req := attendance.SummaryRequest{
		Month: optionalQuery(r, "month"),
		Year:  optionalQuery(r, "year"),
	}

	result, err := h.attendanceService.MySummary(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
