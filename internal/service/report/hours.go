package report

import (
	"math"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/report"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// ExpectedHours prorates the weekly base linearly over an inclusive range.
func ExpectedHours(from, to time.Time, weeklyBase float64) float64 {
	return float64(utils.DaysInclusive(from, to)) / 7 * weeklyBase
}

// Overtime is the excess of total over expected, never negative.
func Overtime(total, expected float64) float64 {
	return math.Max(0, total-expected)
}

// Progress is total as a percentage of expected, capped at 100. Zero when nothing is expected.
func Progress(total, expected float64) float64 {
	if expected <= 0 {
		return 0
	}
	return math.Min(100, total/expected*100)
}

// Effectiveness is revenue per worked hour. Nil when there is no revenue or no hours.
func Effectiveness(revenue *decimal.Decimal, totalHours float64) *decimal.Decimal {
	if revenue == nil || totalHours <= 0 {
		return nil
	}
	e := revenue.Div(decimal.NewFromFloat(totalHours)).Round(2)
	return &e
}

// ComputeHours aggregates classified days over [from, to]. Every status
// contributes its minutes to the total; the day shape only feeds HolidayHours.
func ComputeHours(days []report.Day, from, to time.Time, weeklyBase float64, revenue *decimal.Decimal) report.Hours {
	h := report.Hours{
		Days:         utils.DaysInclusive(from, to),
		StatusCounts: make(map[report.DayStatus]int),
	}

	minutes := 0
	for _, d := range days {
		minutes += d.Minutes
		h.StatusCounts[d.Status]++
		if d.Status == report.DayStatusHoliday {
			h.HolidayHours += d.ShapeHours
		}
	}

	total := float64(minutes) / 60
	expected := ExpectedHours(from, to, weeklyBase)

	h.TotalHours = round2(total)
	h.ExpectedHours = round2(expected)
	h.OvertimeHours = round2(Overtime(total, expected))
	h.ProgressPercent = round2(Progress(total, expected))
	h.Revenue = revenue
	h.Effectiveness = Effectiveness(revenue, total)
	return h
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
