package leave

import (
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
)

// ========================================
// LICENSE DTOs
// ========================================

type CreateLicenseRequest struct {
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	Notes      *string `json:"notes,omitempty"`
	// Approved creates the license already approved.
	Approved bool `json:"approved"`
}

func (r *CreateLicenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !validator.IsInSlice(r.Type, LicenseTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of vacation, medical, suspension, permit",
		})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListLicensesRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
}

type LicenseResponse struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employee_id"`
	Type       LicenseType   `json:"type"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Days       int           `json:"days"`
	Status     LicenseStatus `json:"status"`
	Notes      *string       `json:"notes,omitempty"`
	CreatedAt  string        `json:"created_at"`
}

func ToLicenseResponse(l License) LicenseResponse {
	return LicenseResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		Type:       l.Type,
		StartDate:  utils.FormatDate(l.StartDate),
		EndDate:    utils.FormatDate(l.EndDate),
		Days:       l.Days,
		Status:     l.Status,
		Notes:      l.Notes,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}

// ========================================
// SPECIAL PERMIT DTOs
// ========================================

type CreatePermitRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	From       string `json:"from"` // HH:MM
	To         string `json:"to"`   // HH:MM
	Reason     string `json:"reason"`
}

func (r *CreatePermitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsValidClock(r.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in HH:MM format",
		})
	}
	if !validator.IsValidClock(r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in HH:MM format",
		})
	}
	if validator.IsValidClock(r.From) && validator.IsValidClock(r.To) && r.To <= r.From {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be after from",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListPermitsRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
}

type PermitResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	From       string `json:"from"`
	To         string `json:"to"`
	Reason     string `json:"reason"`
}

func ToPermitResponse(p SpecialPermit) PermitResponse {
	return PermitResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		Date:       utils.FormatDate(p.Date),
		From:       p.From,
		To:         p.To,
		Reason:     p.Reason,
	}
}
