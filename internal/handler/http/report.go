package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/teamclock/attendance-api/internal/domain/report"
	"github.com/teamclock/attendance-api/internal/handler/http/response"
)

type ReportHandler interface {
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Export streams the attendance report as a file download.
// GET /attendance/export?from=2025-11-01&to=2025-11-30&employee_id=EMP001&format=xlsx
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		From:       optionalQuery(r, "from"),
		To:         optionalQuery(r, "to"),
		EmployeeID: optionalQuery(r, "employee_id"),
		Format:     report.Format(r.URL.Query().Get("format")),
	}

	file, err := h.reportService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		slog.Error("Failed to write export", "filename", file.Filename, "error", err)
	}
}
