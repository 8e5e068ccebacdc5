package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

type Source string

const (
	SourceImport Source = "import"
	SourceManual Source = "manual"
)

const (
	// ManualBranch tags operator entries so they never share a key with imported data.
	ManualBranch = "manual"
	// UnassignedBranch is used when neither a selection nor a filename hint names a branch.
	UnassignedBranch = "unassigned"
)

// Record holds one employee's punches for one day at one branch.
// Punch fields are "HH:MM" or empty when absent.
type Record struct {
	Key        string
	EmployeeID string
	RawName    string
	Date       time.Time
	Branch     string
	Entrance1  string
	Exit1      string
	Entrance2  string
	Exit2      string
	Status     Status
	Source     Source
	SourceName string
	UpdatedAt  time.Time
}

// RecordKey builds the composite identity of a record. At most one record exists per key.
func RecordKey(employeeID string, date time.Time, branch string) string {
	return strings.Join([]string{employeeID, utils.FormatDate(date), branch}, "|")
}

// Rekey returns a copy of r attached to employeeID, with its key recomputed.
func (r Record) Rekey(employeeID string) Record {
	r.EmployeeID = employeeID
	r.Key = RecordKey(employeeID, r.Date, r.Branch)
	return r
}

// HasPunches reports whether any punch was recorded.
func (r Record) HasPunches() bool {
	return r.Entrance1 != "" || r.Exit1 != "" || r.Entrance2 != "" || r.Exit2 != ""
}

// DeriveStatus marks a record present when it carries at least one punch.
func DeriveStatus(r Record) Status {
	if r.HasPunches() {
		return StatusPresent
	}
	return StatusAbsent
}

// Filter narrows record listings; nil fields do not filter.
type Filter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
	Branch     *string
}

func (f Filter) Matches(r Record) bool {
	if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Branch != nil && r.Branch != *f.Branch {
		return false
	}
	return utils.WithinRange(r.Date, f.From, f.To)
}
