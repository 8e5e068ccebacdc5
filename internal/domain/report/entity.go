package report

import (
	"time"

	"github.com/shopspring/decimal"
)

type DayStatus string

// Listed by classification precedence, highest first.
const (
	DayStatusLicense DayStatus = "license"
	DayStatusHoliday DayStatus = "holiday"
	DayStatusPresent DayStatus = "present"
	DayStatusAnomaly DayStatus = "anomaly"
	DayStatusWeekend DayStatus = "weekend"
	DayStatusOff     DayStatus = "off"
)

// Day is the classification of one calendar day for one employee.
type Day struct {
	Date         time.Time
	Status       DayStatus
	Minutes      int
	HolidayLabel string
	LicenseType  string
	// ShapeHours is the per-weekday expected figure, shown for holidays only.
	ShapeHours float64
	Permits    []PermitNote
}

type PermitNote struct {
	From   string
	To     string
	Reason string
}

// DayShapeHours is the fixed weekly shape used for holiday display:
// Sunday 0, Saturday 4, Monday to Friday 8. It is never the overtime baseline.
func DayShapeHours(day time.Time) float64 {
	switch day.Weekday() {
	case time.Sunday:
		return 0
	case time.Saturday:
		return 4
	default:
		return 8
	}
}

// Hours is the period aggregate for one employee.
type Hours struct {
	Days            int
	TotalHours      float64
	ExpectedHours   float64
	OvertimeHours   float64
	ProgressPercent float64
	// HolidayHours is display only; it does not feed overtime.
	HolidayHours  float64
	StatusCounts  map[DayStatus]int
	Revenue       *decimal.Decimal
	Effectiveness *decimal.Decimal
}

// EmployeeSummary is one export row.
type EmployeeSummary struct {
	EmployeeID string
	Name       string
	Branches   []string
	Virtual    bool
	Hours      Hours
}
