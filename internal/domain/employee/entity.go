package employee

import (
	"time"
)

// Employee is onboarded by HR; its ID never changes once created.
type Employee struct {
	ID       string
	FullName string
	BranchID string
	TaxID    string
	// SalesAlias is the seller name used by the sales subsystem, when it differs from FullName.
	SalesAlias *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SellerName is the name under which sales records are filed for this employee.
func (e Employee) SellerName() string {
	if e.SalesAlias != nil && *e.SalesAlias != "" {
		return *e.SalesAlias
	}
	return e.FullName
}
