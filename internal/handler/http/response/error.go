package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/auth"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/report"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/persist"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/sheet"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, "Employee already exists")

	// Identity domain errors
	case errors.Is(err, identity.ErrAliasNotFound):
		NotFound(w, "Alias not found")
	case errors.Is(err, identity.ErrAliasExists):
		Conflict(w, "An alias already exists for this name")
	case errors.Is(err, identity.ErrVirtualIdentityUnknown):
		NotFound(w, "Virtual identity has no records")
	case errors.Is(err, identity.ErrNotVirtualIdentity):
		BadRequest(w, "Identity is not virtual", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEmptyImport):
		BadRequest(w, "Import contains no rows", nil)
	case errors.Is(err, attendance.ErrConfirmationRequired):
		BadRequest(w, "Confirmation token is required", nil)
	case errors.Is(err, attendance.ErrConfirmationInvalid):
		Conflict(w, "Confirmation token is invalid or expired")
	case errors.Is(err, sheet.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported file format, upload .xlsx or .csv", nil)
	case errors.Is(err, sheet.ErrNoWorksheet):
		BadRequest(w, "Workbook has no worksheet", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Leave domain errors
	case errors.Is(err, leave.ErrLicenseNotFound):
		NotFound(w, "License not found")
	case errors.Is(err, leave.ErrLicenseAlreadyProcessed):
		Conflict(w, "License already processed")
	case errors.Is(err, leave.ErrPermitNotFound):
		NotFound(w, "Special permit not found")

	// Time bank domain errors
	case errors.Is(err, timebank.ErrEntryNotFound):
		NotFound(w, "Time bank entry not found")
	case errors.Is(err, timebank.ErrEntryTypeMismatch):
		BadRequest(w, "Entry type does not match the sign of its hours", nil)

	// Report domain errors
	case errors.Is(err, report.ErrInvalidRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, report.ErrRangeTooLarge):
		BadRequest(w, "Date range is too large", nil)
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", nil)

	case errors.Is(err, persist.ErrQueueStopped):
		ServiceUnavailable(w, "Session is closed")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
