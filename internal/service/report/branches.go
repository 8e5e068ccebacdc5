package report

import (
	"sort"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
)

// ConsolidateBranches lists the primary branch first, then every other branch
// tag found on the records, sorted. Recomputed on every query.
func ConsolidateBranches(primary string, records []attendance.Record) []string {
	seen := make(map[string]struct{})
	if primary != "" {
		seen[primary] = struct{}{}
	}

	var others []string
	for _, r := range records {
		if _, ok := seen[r.Branch]; ok || r.Branch == "" {
			continue
		}
		seen[r.Branch] = struct{}{}
		others = append(others, r.Branch)
	}
	sort.Strings(others)

	branches := make([]string, 0, len(others)+1)
	if primary != "" {
		branches = append(branches, primary)
	}
	return append(branches, others...)
}
