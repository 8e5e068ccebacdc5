package timebank

import (
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
)

type EntryType string

const (
	// EntryTypeDebt means the employee owes hours; stored negative.
	EntryTypeDebt EntryType = "debt"
	// EntryTypeCredit means hours are owed to the employee; stored positive.
	EntryTypeCredit EntryType = "credit"
)

// Entry is immutable once created. Removal is a hard delete.
type Entry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Hours      float64
	Type       EntryType
	Reason     string
	CreatedAt  time.Time
}

// SignedHours applies the sign convention of t to a magnitude.
func SignedHours(t EntryType, magnitude float64) float64 {
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if t == EntryTypeDebt {
		return -magnitude
	}
	return magnitude
}

// Consistent reports whether the type tag matches the sign of Hours.
func (e Entry) Consistent() bool {
	switch e.Type {
	case EntryTypeDebt:
		return e.Hours < 0
	case EntryTypeCredit:
		return e.Hours > 0
	default:
		return false
	}
}

type Filter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
}

func (f Filter) Matches(e Entry) bool {
	if f.EmployeeID != nil && e.EmployeeID != *f.EmployeeID {
		return false
	}
	return utils.WithinRange(e.Date, f.From, f.To)
}

// Balance sums the hours of every entry. Negative means the employee owes hours.
func Balance(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}
