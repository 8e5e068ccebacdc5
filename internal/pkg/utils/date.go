package utils

import (
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DateOnly drops the time of day, keeping the calendar day of t in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInclusive counts calendar days from..to, both ends included. Returns 0 when to is before from.
func DaysInclusive(from, to time.Time) int {
	from, to = DateOnly(from), DateOnly(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// EachDay calls fn for every calendar day in [from, to].
func EachDay(from, to time.Time, fn func(day time.Time)) {
	to = DateOnly(to)
	for d := DateOnly(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// WithinRange reports whether day falls in [from, to]; nil bounds are open.
func WithinRange(day time.Time, from, to *time.Time) bool {
	day = DateOnly(day)
	if from != nil && day.Before(DateOnly(*from)) {
		return false
	}
	if to != nil && day.After(DateOnly(*to)) {
		return false
	}
	return true
}

// ParseClock parses a time of day such as "08:30", "8:30" or "08:30:15" into minutes after midnight.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, false
	}
	return h*60 + m, true
}

// NormalizeClock returns s as zero padded "HH:MM", or "" when s is not a time of day.
func NormalizeClock(s string) string {
	minutes, ok := ParseClock(s)
	if !ok {
		return ""
	}
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("15:04")
}
