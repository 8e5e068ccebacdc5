package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	identitysvc "github.com/cmlabs-hris/timekeeping-go/internal/service/identity"
	"github.com/xuri/excelize/v2"
)

// Day first layouts come before month first ones; time clocks here print day first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"02/01/06",
	"2/1/06",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"02-01-06",
}

var nameLabels = map[string]bool{
	"nombre":            true,
	"empleado":          true,
	"apellido y nombre": true,
	"nombre y apellido": true,
	"name":              true,
	"employee":          true,
}

var weekdayNames = map[string]bool{
	"lunes": true, "martes": true, "miercoles": true, "jueves": true, "viernes": true, "sabado": true, "domingo": true,
	"lun": true, "mar": true, "mie": true, "jue": true, "vie": true, "sab": true, "dom": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true, "friday": true, "saturday": true, "sunday": true,
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true, "sat": true, "sun": true,
}

// parseDate accepts the layouts above, a date preceded by a weekday name and
// spreadsheet date serials.
func parseDate(cell string) (time.Time, bool) {
	if t, ok := parseDateText(cell); ok {
		return t, true
	}
	return parseDateSerial(cell)
}

func parseDateText(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}

	candidates := []string{cell}
	if fields := strings.Fields(cell); len(fields) > 1 && weekdayNames[utils.FoldName(strings.Trim(fields[0], ".,"))] {
		candidates = append(candidates, strings.Join(fields[1:], " "))
	}
	for _, c := range candidates {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return utils.DateOnly(t), true
			}
		}
	}
	return time.Time{}, false
}

// Serials between 2000-01-01 and 2049-12-31 only, so plain numbers are not read as dates.
func parseDateSerial(cell string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || serial < 36526 || serial > 54789 {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return utils.DateOnly(t), true
}

// parseClock normalizes a punch cell to "HH:MM". Spreadsheet day fractions
// such as 0.375 are accepted. Anything else is an absent punch.
func parseClock(cell string) string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return ""
	}
	if clock := utils.NormalizeClock(cell); clock != "" {
		return clock
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && f >= 0 && f < 1 {
		minutes := int(math.Round(f * 24 * 60))
		if minutes >= 24*60 {
			return ""
		}
		return utils.NormalizeClock(fmt.Sprintf("%d:%02d", minutes/60, minutes%60))
	}
	// "09:00 hs" and similar suffixes
	if fields := strings.Fields(cell); len(fields) > 1 {
		return utils.NormalizeClock(fields[0])
	}
	return ""
}

// findDate returns the index of the date column. A written date anywhere in
// the row wins over serials, since employee numbers fall in the serial range.
// Among serials, the first one followed by a punch or by nothing is taken.
func findDate(row []string) (int, time.Time) {
	for i, cell := range row {
		if d, ok := parseDateText(cell); ok {
			return i, d
		}
	}

	first, firstDate := -1, time.Time{}
	for i, cell := range row {
		d, ok := parseDateSerial(cell)
		if !ok {
			continue
		}
		if i+1 >= len(row) || strings.TrimSpace(row[i+1]) == "" || parseClock(row[i+1]) != "" {
			return i, d
		}
		if first < 0 {
			first, firstDate = i, d
		}
	}
	return first, firstDate
}

// identityCells is the identity context a row carries.
type identityCells struct {
	taxID string
	name  string
}

// scanIdentity looks for a tax id and a name in cells. Labelled names
// ("Nombre: Ana") are always taken; bare names only when allowBare is set.
func scanIdentity(cells []string, allowBare bool) identityCells {
	var found identityCells
	for i := 0; i < len(cells); i++ {
		cell := strings.TrimSpace(cells[i])
		if cell == "" {
			continue
		}

		if found.taxID == "" {
			if tax := identitysvc.FindTaxID(cell); tax != "" {
				found.taxID = tax
				continue
			}
		}

		if label, value, ok := strings.Cut(cell, ":"); ok && nameLabels[utils.FoldName(label)] {
			value = strings.TrimSpace(value)
			if value == "" {
				value = nextNonEmpty(cells, i+1)
				i++
			}
			if looksLikeName(value) {
				found.name = value
			}
			continue
		}
		if nameLabels[utils.FoldName(cell)] {
			if value := nextNonEmpty(cells, i+1); looksLikeName(value) {
				found.name = value
			}
			i++
			continue
		}

		if allowBare && found.name == "" && looksLikeName(cell) {
			found.name = cell
		}
	}
	return found
}

func nextNonEmpty(cells []string, from int) string {
	for i := from; i < len(cells); i++ {
		if v := strings.TrimSpace(cells[i]); v != "" {
			return v
		}
	}
	return ""
}

// looksLikeName accepts cells with at least two letters that are neither a
// weekday, a time of day nor a tax id.
func looksLikeName(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" || weekdayNames[utils.FoldName(strings.Trim(cell, ".,"))] {
		return false
	}
	if utils.NormalizeClock(cell) != "" || identitysvc.FindTaxID(cell) != "" {
		return false
	}
	letters := 0
	for _, r := range cell {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127 {
			letters++
		}
	}
	return letters >= 2
}

// punches returns the four cells after the date column, normalized.
func punches(row []string, dateIdx int) [4]string {
	var out [4]string
	for i := 0; i < 4; i++ {
		if idx := dateIdx + 1 + i; idx < len(row) {
			out[i] = parseClock(row[idx])
		}
	}
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
