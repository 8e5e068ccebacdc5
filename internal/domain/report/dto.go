package report

import (
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxRangeDays bounds a single report window.
const MaxRangeDays = 366

type RangeRequest struct {
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	EmployeeID *string `json:"employee_id,omitempty"`
	Branch     *string `json:"branch,omitempty"`
}

// Parse validates the request and returns its bounds.
func (r *RangeRequest) Parse() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

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
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if utils.DaysInclusive(start, end) > MaxRangeDays {
		return time.Time{}, time.Time{}, ErrRangeTooLarge
	}
	return start, end, nil
}

type PermitNoteResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

type DayResponse struct {
	Date         string               `json:"date"`
	Status       DayStatus            `json:"status"`
	Hours        float64              `json:"hours"`
	HolidayLabel string               `json:"holiday_label,omitempty"`
	HolidayHours float64              `json:"holiday_hours,omitempty"`
	LicenseType  string               `json:"license_type,omitempty"`
	Permits      []PermitNoteResponse `json:"permits,omitempty"`
}

type EmployeeDaysResponse struct {
	EmployeeID string        `json:"employee_id"`
	Name       string        `json:"name"`
	Branches   []string      `json:"branches"`
	Days       []DayResponse `json:"days"`
}

func ToDayResponse(d Day) DayResponse {
	resp := DayResponse{
		Date:         utils.FormatDate(d.Date),
		Status:       d.Status,
		Hours:        float64(d.Minutes) / 60,
		HolidayLabel: d.HolidayLabel,
		LicenseType:  d.LicenseType,
	}
	if d.Status == DayStatusHoliday {
		resp.HolidayHours = d.ShapeHours
	}
	for _, p := range d.Permits {
		resp.Permits = append(resp.Permits, PermitNoteResponse{From: p.From, To: p.To, Reason: p.Reason})
	}
	return resp
}

type SummaryResponse struct {
	EmployeeID      string            `json:"employee_id"`
	Name            string            `json:"name"`
	Branches        []string          `json:"branches"`
	Virtual         bool              `json:"virtual"`
	Days            int               `json:"days"`
	TotalHours      float64           `json:"total_hours"`
	ExpectedHours   float64           `json:"expected_hours"`
	OvertimeHours   float64           `json:"overtime_hours"`
	ProgressPercent float64           `json:"progress_percent"`
	HolidayHours    float64           `json:"holiday_hours"`
	StatusCounts    map[DayStatus]int `json:"status_counts"`
	Revenue         *decimal.Decimal  `json:"revenue,omitempty"`
	Effectiveness   *decimal.Decimal  `json:"effectiveness,omitempty"`
}

func ToSummaryResponse(s EmployeeSummary) SummaryResponse {
	return SummaryResponse{
		EmployeeID:      s.EmployeeID,
		Name:            s.Name,
		Branches:        s.Branches,
		Virtual:         s.Virtual,
		Days:            s.Hours.Days,
		TotalHours:      s.Hours.TotalHours,
		ExpectedHours:   s.Hours.ExpectedHours,
		OvertimeHours:   s.Hours.OvertimeHours,
		ProgressPercent: s.Hours.ProgressPercent,
		HolidayHours:    s.Hours.HolidayHours,
		StatusCounts:    s.Hours.StatusCounts,
		Revenue:         s.Hours.Revenue,
		Effectiveness:   s.Hours.Effectiveness,
	}
}

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

type ExportRequest struct {
	RangeRequest
	Format ExportFormat `json:"format"`
}

func (f ExportFormat) ContentType() string {
	if f == ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
