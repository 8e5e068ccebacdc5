package report

import (
	"context"
	"io"
)

type ReportService interface {
	// Days classifies every day of the range for every employee in scope
	Days(ctx context.Context, req RangeRequest) ([]EmployeeDaysResponse, error)

	// Summaries aggregates hours, expected hours and overtime per employee
	Summaries(ctx context.Context, req RangeRequest) ([]SummaryResponse, error)

	// Export writes one row per employee in the requested format
	Export(ctx context.Context, req ExportRequest, w io.Writer) error
}
