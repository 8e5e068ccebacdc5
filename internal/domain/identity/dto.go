package identity

import (
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
)

type CreateAliasRequest struct {
	RawName    string `json:"raw_name"`
	EmployeeID string `json:"employee_id"`
}

func (r *CreateAliasRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RawName) {
		errs = append(errs, validator.ValidationError{
			Field:   "raw_name",
			Message: "raw_name is required",
		})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if IsVirtual(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a real employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AliasResponse struct {
	ID             string `json:"id"`
	RawName        string `json:"raw_name"`
	NormalizedName string `json:"normalized_name"`
	EmployeeID     string `json:"employee_id"`
	CreatedAt      string `json:"created_at"`
}

func ToAliasResponse(m AliasMapping) AliasResponse {
	return AliasResponse{
		ID:             m.ID,
		RawName:        m.RawName,
		NormalizedName: m.NormalizedName,
		EmployeeID:     m.EmployeeID,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}

type RelinkRequest struct {
	VirtualID  string `json:"virtual_id"`
	EmployeeID string `json:"employee_id"`
}

func (r *RelinkRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsVirtual(r.VirtualID) {
		errs = append(errs, validator.ValidationError{
			Field:   "virtual_id",
			Message: "virtual_id must be a virtual identity",
		})
	}
	if validator.IsEmpty(r.EmployeeID) || IsVirtual(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a real employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RelinkResult reports what happened to each virtual record. Collisions are
// records dropped because the employee already had a record for that day and branch.
type RelinkResult struct {
	VirtualID      string   `json:"virtual_id"`
	EmployeeID     string   `json:"employee_id"`
	Moved          int      `json:"moved"`
	Collisions     []string `json:"collisions"`
	AliasesCreated []string `json:"aliases_created"`
}

type VirtualIdentityResponse struct {
	ID          string   `json:"id"`
	RawNames    []string `json:"raw_names"`
	RecordCount int      `json:"record_count"`
	FirstDate   string   `json:"first_date"`
	LastDate    string   `json:"last_date"`
}

func ToVirtualIdentityResponse(v VirtualIdentity) VirtualIdentityResponse {
	return VirtualIdentityResponse{
		ID:          v.ID,
		RawNames:    v.RawNames,
		RecordCount: v.RecordCount,
		FirstDate:   utils.FormatDate(v.FirstDate),
		LastDate:    utils.FormatDate(v.LastDate),
	}
}
