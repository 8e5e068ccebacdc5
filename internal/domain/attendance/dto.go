package attendance

import (
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/sheet"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
)

// ========================================
// IMPORT DTOs
// ========================================

// ImportRequest carries the sheets of one parsed source file.
type ImportRequest struct {
	// SourceName is the uploaded filename; facility codes in it hint the branch.
	SourceName string
	// Branch is an explicit operator selection and wins over filename hints.
	Branch *string
	// Header identity never carries from one sheet into the next.
	Sheets []sheet.Sheet
	// Raw is the uploaded file, archived for audit when present.
	Raw []byte
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SourceName) {
		errs = append(errs, validator.ValidationError{
			Field:   "source_name",
			Message: "source_name is required",
		})
	}
	if r.Branch != nil && validator.IsEmpty(*r.Branch) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch",
			Message: "branch must not be empty when provided",
		})
	}
	if r.Branch != nil && *r.Branch == ManualBranch {
		errs = append(errs, validator.ValidationError{
			Field:   "branch",
			Message: "branch 'manual' is reserved for manual entries",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SkippedRow struct {
	Sheet  string `json:"sheet,omitempty"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	SourceName string         `json:"source_name"`
	Branch     string         `json:"branch"`
	Rows       int            `json:"rows"`
	Inserted   int            `json:"inserted"`
	Replaced   int            `json:"replaced"`
	Skipped    []SkippedRow   `json:"skipped"`
	Resolution map[string]int `json:"resolution"` // records per resolution method
	ArchivedAs string         `json:"archived_as,omitempty"`
}

// ========================================
// MANUAL ENTRY DTOs
// ========================================

type ManualEntryRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Entrance   string `json:"entrance"`
	Exit       string `json:"exit"`
}

func (r *ManualEntryRequest) Validate() error {
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
	if !validator.IsValidClock(r.Entrance) {
		errs = append(errs, validator.ValidationError{
			Field:   "entrance",
			Message: "entrance must be in HH:MM format",
		})
	}
	if !validator.IsValidClock(r.Exit) {
		errs = append(errs, validator.ValidationError{
			Field:   "exit",
			Message: "exit must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// LISTING DTOs
// ========================================

type ListRecordsRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Branch     *string `json:"branch,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

// ToFilter validates the request and converts it to a repository filter.
func (r *ListRecordsRequest) ToFilter() (Filter, error) {
	var errs validator.ValidationErrors
	filter := Filter{EmployeeID: r.EmployeeID, Branch: r.Branch}

	if r.StartDate != nil {
		d, ok := validator.IsValidDate(*r.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			filter.From = &d
		}
	}
	if r.EndDate != nil {
		d, ok := validator.IsValidDate(*r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			filter.To = &d
		}
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return Filter{}, errs
	}
	return filter, nil
}

type RecordResponse struct {
	Key           string `json:"key"`
	EmployeeID    string `json:"employee_id"`
	RawName       string `json:"raw_name,omitempty"`
	Date          string `json:"date"`
	Branch        string `json:"branch"`
	Entrance1     string `json:"entrance1,omitempty"`
	Exit1         string `json:"exit1,omitempty"`
	Entrance2     string `json:"entrance2,omitempty"`
	Exit2         string `json:"exit2,omitempty"`
	Status        Status `json:"status"`
	Source        Source `json:"source"`
	WorkedMinutes int    `json:"worked_minutes"`
	UpdatedAt     string `json:"updated_at"`
}

func ToRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		Key:           r.Key,
		EmployeeID:    r.EmployeeID,
		RawName:       r.RawName,
		Date:          utils.FormatDate(r.Date),
		Branch:        r.Branch,
		Entrance1:     r.Entrance1,
		Exit1:         r.Exit1,
		Entrance2:     r.Entrance2,
		Exit2:         r.Exit2,
		Status:        r.Status,
		Source:        r.Source,
		WorkedMinutes: r.WorkedMinutes(),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
}

// ========================================
// BULK CLEAR DTOs
// ========================================

type ClearConfirmation struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ClearRequest struct {
	Token string `json:"token"`
}

type ClearResult struct {
	Deleted int `json:"deleted"`
}

// RowCount is the number of rows across every sheet.
func (r *ImportRequest) RowCount() int {
	n := 0
	for _, sh := range r.Sheets {
		n += len(sh.Rows)
	}
	return n
}
