package report

import (
	"strings"

	"github.com/teamclock/attendance-api/internal/pkg/validator"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ExportRequest selects the rows of an export. From and To are inclusive
// and default to the current month.
type ExportRequest struct {
	From       *string `json:"from,omitempty"`
	To         *string `json:"to,omitempty"`
	EmployeeID *string `json:"employeeId,omitempty"`
	Format     Format  `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Format == "" {
		r.Format = FormatCSV
	}
	r.Format = Format(strings.ToLower(string(r.Format)))
	if r.Format != FormatCSV && r.Format != FormatXLSX {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: csv, xlsx",
		})
	}

	if r.From != nil {
		if _, ok := validator.IsValidDate(*r.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}
	if r.To != nil {
		if _, ok := validator.IsValidDate(*r.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}
	if len(errs) == 0 && r.From != nil && r.To != nil && *r.From > *r.To {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must not be after to",
		})
	}

	if r.EmployeeID != nil && !validator.IsValidEmployeeCode(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must look like EMP001",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// File is a rendered export ready to be streamed to the client.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}
