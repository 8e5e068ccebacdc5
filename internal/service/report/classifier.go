package report

import (
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/report"
)

// DayFacts is everything known about one employee on one day.
type DayFacts struct {
	Date    time.Time
	Minutes int
	// License is the approved license covering the date, if any
	License *leave.License
	Holiday *holiday.Holiday
	HasSale bool
	Permits []leave.SpecialPermit
}

// Classify assigns exactly one status to a day. Precedence is license,
// holiday, present, anomaly, weekend, off. Minutes are kept whatever the status.
func Classify(f DayFacts) report.Day {
	day := report.Day{
		Date:       f.Date,
		Minutes:    f.Minutes,
		ShapeHours: report.DayShapeHours(f.Date),
	}
	for _, p := range f.Permits {
		day.Permits = append(day.Permits, report.PermitNote{From: p.From, To: p.To, Reason: p.Reason})
	}

	switch {
	case f.License != nil:
		day.Status = report.DayStatusLicense
		day.LicenseType = string(f.License.Type)
	case f.Holiday != nil:
		day.Status = report.DayStatusHoliday
		day.HolidayLabel = f.Holiday.Label
	case f.Minutes > 0:
		day.Status = report.DayStatusPresent
	case f.HasSale:
		// Sold something without a punch: the clock missed a working day
		day.Status = report.DayStatusAnomaly
	case f.Date.Weekday() == time.Saturday || f.Date.Weekday() == time.Sunday:
		day.Status = report.DayStatusWeekend
	default:
		day.Status = report.DayStatusOff
	}
	return day
}
