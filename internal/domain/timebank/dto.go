package timebank

import (
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
)

// AppendEntryRequest is the structured replacement for the interactive hours prompt.
// Hours is a positive magnitude; Type decides the sign.
type AppendEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Type       string  `json:"type"` // debt | credit
	Hours      float64 `json:"hours"`
	Reason     string  `json:"reason"`
}

func (r *AppendEntryRequest) Validate() error {
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
	if r.Type != string(EntryTypeDebt) && r.Type != string(EntryTypeCredit) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be debt or credit",
		})
	}
	if r.Hours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than zero",
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

type ListEntriesRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
}

// ToFilter validates the request and converts it to a repository filter.
func (r *ListEntriesRequest) ToFilter() (Filter, error) {
	var errs validator.ValidationErrors
	filter := Filter{EmployeeID: r.EmployeeID}

	if r.StartDate != nil {
		if d, ok := validator.IsValidDate(*r.StartDate); ok {
			filter.From = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != nil {
		if d, ok := validator.IsValidDate(*r.EndDate); ok {
			filter.To = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return Filter{}, errs
	}
	return filter, nil
}

type EntryResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Hours      float64   `json:"hours"`
	Type       EntryType `json:"type"`
	Reason     string    `json:"reason"`
	CreatedAt  string    `json:"created_at"`
}

func ToEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Date:       utils.FormatDate(e.Date),
		Hours:      e.Hours,
		Type:       e.Type,
		Reason:     e.Reason,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}

type BalanceResponse struct {
	EmployeeID string  `json:"employee_id"`
	Balance    float64 `json:"balance"`
	Debt       float64 `json:"debt"`
	Credit     float64 `json:"credit"`
	Entries    int     `json:"entries"`
}
