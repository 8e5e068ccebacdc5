package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/report"
	"github.com/cmlabs-hris/timekeeping-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Daily status per employee
	Days(w http.ResponseWriter, r *http.Request)

	// Hours, expected hours and overtime per employee
	Hours(w http.ResponseWriter, r *http.Request)

	// Hours table as a csv or xlsx download
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func rangeRequest(r *http.Request) report.RangeRequest {
	return report.RangeRequest{
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		EmployeeID: queryParam(r, "employee_id"),
		Branch:     queryParam(r, "branch"),
	}
}

// Days handles GET /reports/days
func (h *reportHandlerImpl) Days(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Days(r.Context(), rangeRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Hours handles GET /reports/hours
func (h *reportHandlerImpl) Hours(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Summaries(r.Context(), rangeRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export handles GET /reports/export
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		RangeRequest: rangeRequest(r),
		Format:       report.ExportFormat(r.URL.Query().Get("format")),
	}
	if req.Format == "" {
		req.Format = report.ExportFormatCSV
	}

	// Buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.reportService.Export(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("hours_%s_%s.%s", req.StartDate, req.EndDate, req.Format)
	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write export", "error", err)
	}
}
