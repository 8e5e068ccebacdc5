package employee

import (
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	BranchID   string  `json:"branch_id"`
	TaxID      string  `json:"tax_id"`
	SalesAlias *string `json:"sales_alias,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		BranchID:   e.BranchID,
		TaxID:      e.TaxID,
		SalesAlias: e.SalesAlias,
	}
}

// UpdateEmployeeRequest edits the mutable fields of an employee; identity is fixed.
type UpdateEmployeeRequest struct {
	ID         string  `json:"-"`
	BranchID   *string `json:"branch_id,omitempty"`
	SalesAlias *string `json:"sales_alias,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.BranchID != nil && validator.IsEmpty(*r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id must not be empty",
		})
	}
	if r.BranchID == nil && r.SalesAlias == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of branch_id or sales_alias is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
