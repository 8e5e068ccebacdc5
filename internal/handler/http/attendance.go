package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/sheet"
	"github.com/go-chi/chi/v5"
)

// importMaxBytes bounds an uploaded attendance file.
const importMaxBytes = 32 << 20

type AttendanceHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	AddManualEntry(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	RequestClear(w http.ResponseWriter, r *http.Request)
	ClearAll(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Import implements AttendanceHandler.
func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, importMaxBytes)
	if err := r.ParseMultipartForm(importMaxBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Attendance file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	sheets, err := sheet.Read(fileHeader.Filename, data)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := attendance.ImportRequest{
		SourceName: fileHeader.Filename,
		Sheets:     sheets,
		Raw:        data,
	}
	if branch := strings.TrimSpace(r.FormValue("branch")); branch != "" {
		req.Branch = &branch
	}

	result, err := h.attendanceService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance imported", result)
}

// AddManualEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) AddManualEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.AddManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual entry recorded", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := attendance.ListRecordsRequest{
		EmployeeID: queryParam(r, "employee_id"),
		Branch:     queryParam(r, "branch"),
		StartDate:  queryParam(r, "start_date"),
		EndDate:    queryParam(r, "end_date"),
	}

	records, err := h.attendanceService.ListRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		response.BadRequest(w, "Record key is required", nil)
		return
	}

	if err := h.attendanceService.DeleteRecord(r.Context(), key); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}

// RequestClear implements AttendanceHandler.
func (h *attendanceHandlerImpl) RequestClear(w http.ResponseWriter, r *http.Request) {
	confirmation, err := h.attendanceService.RequestClear(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Confirm with this token to clear all attendance", confirmation)
}

// ClearAll implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClearAll(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClearRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.ClearAll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance cleared", result)
}
