package attendance

import (
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
)

// pairMinutes is exit-entrance for one punch pair. A missing punch or an
// inverted pair contributes zero.
func pairMinutes(entrance, exit string) int {
	in, ok := utils.ParseClock(entrance)
	if !ok {
		return 0
	}
	out, ok := utils.ParseClock(exit)
	if !ok {
		return 0
	}
	if out < in {
		return 0
	}
	return out - in
}

// WorkedMinutes sums both punch pairs of the record.
func (r Record) WorkedMinutes() int {
	return pairMinutes(r.Entrance1, r.Exit1) + pairMinutes(r.Entrance2, r.Exit2)
}

// DailyMinutes sums worked minutes per employee per calendar day ("2006-01-02")
// across every record, so work at two branches on the same day adds up.
func DailyMinutes(records []Record) map[string]map[string]int {
	result := make(map[string]map[string]int)
	for _, r := range records {
		day := utils.FormatDate(r.Date)
		if result[r.EmployeeID] == nil {
			result[r.EmployeeID] = make(map[string]int)
		}
		result[r.EmployeeID][day] += r.WorkedMinutes()
	}
	return result
}
