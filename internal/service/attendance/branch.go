package attendance

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
)

// inferBranch picks the explicit selection, else the first configured facility
// code found as a token of the filename, else fallback.
func inferBranch(selected *string, sourceName string, hints map[string]string, fallback string) string {
	if selected != nil && strings.TrimSpace(*selected) != "" {
		return strings.TrimSpace(*selected)
	}

	base := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	tokens := strings.FieldsFunc(strings.ToUpper(base), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	codes := make([]string, 0, len(hints))
	for code := range hints {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, token := range tokens {
		for _, code := range codes {
			if token == code {
				return hints[code]
			}
		}
	}

	if fallback == "" || fallback == attendance.ManualBranch {
		return attendance.UnassignedBranch
	}
	return fallback
}
