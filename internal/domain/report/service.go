package report

import "context"

type ReportService interface {
	// Export renders the attendance rows selected by req.
	Export(ctx context.Context, req ExportRequest) (File, error)
}
