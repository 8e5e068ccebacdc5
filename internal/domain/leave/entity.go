package leave

import (
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
)

type LicenseType string

const (
	LicenseTypeVacation   LicenseType = "vacation"
	LicenseTypeMedical    LicenseType = "medical"
	LicenseTypeSuspension LicenseType = "suspension"
	LicenseTypePermit     LicenseType = "permit"
)

var LicenseTypes = []string{
	string(LicenseTypeVacation),
	string(LicenseTypeMedical),
	string(LicenseTypeSuspension),
	string(LicenseTypePermit),
}

type LicenseStatus string

const (
	LicenseStatusWaitingApproval LicenseStatus = "waiting_approval"
	LicenseStatusApproved        LicenseStatus = "approved"
	LicenseStatusRejected        LicenseStatus = "rejected"
)

// License is an absence over an inclusive date range.
type License struct {
	ID         string
	EmployeeID string
	Type       LicenseType
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	Status     LicenseStatus
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether the license is approved and includes day.
func (l License) Covers(day time.Time) bool {
	if l.Status != LicenseStatusApproved {
		return false
	}
	return utils.WithinRange(day, &l.StartDate, &l.EndDate)
}

// SpecialPermit is a short leave within a day. It does not change hour totals.
type SpecialPermit struct {
	ID         string
	EmployeeID string
	Date       time.Time
	From       string // HH:MM
	To         string // HH:MM
	Reason     string
	CreatedAt  time.Time
}

type LicenseFilter struct {
	EmployeeID *string
	Status     *LicenseStatus
	// From/To select licenses overlapping the window.
	From *time.Time
	To   *time.Time
}

func (f LicenseFilter) Matches(l License) bool {
	if f.EmployeeID != nil && l.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil && l.Status != *f.Status {
		return false
	}
	if f.From != nil && utils.DateOnly(l.EndDate).Before(utils.DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && utils.DateOnly(l.StartDate).After(utils.DateOnly(*f.To)) {
		return false
	}
	return true
}

type PermitFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
}

func (f PermitFilter) Matches(p SpecialPermit) bool {
	if f.EmployeeID != nil && p.EmployeeID != *f.EmployeeID {
		return false
	}
	return utils.WithinRange(p.Date, f.From, f.To)
}
