package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/report"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/sales"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timekeeping-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	employees employee.EmployeeRepository
	records   attendance.AttendanceRepository
	holidays  holiday.HolidayRepository
	licenses  leave.LicenseRepository
	permits   leave.PermitRepository
	sales     *memory.SalesRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		employees: memory.NewEmployeeRepository(),
		records:   memory.NewAttendanceRepository(),
		holidays:  memory.NewHolidayRepository(),
		licenses:  memory.NewLicenseRepository(),
		permits:   memory.NewPermitRepository(),
		sales:     memory.NewSalesRepository(),
	}
	alias := "Anita"
	_, err := f.employees.Create(context.Background(), employee.Employee{ID: "emp-ana", FullName: "Ana Pérez", BranchID: "centro", SalesAlias: &alias})
	require.NoError(t, err)
	_, err = f.employees.Create(context.Background(), employee.Employee{ID: "emp-luis", FullName: "Luis Díaz", BranchID: "norte"})
	require.NoError(t, err)
	return f
}

func (f *fixture) service(weeklyBase float64) report.ReportService {
	return NewReportService(f.employees, f.records, f.holidays, f.licenses, f.permits, f.sales, weeklyBase)
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func (f *fixture) punch(t *testing.T, employeeID, rawName, day, branch, in, out string) {
	t.Helper()
	r := attendance.Record{
		EmployeeID: employeeID,
		RawName:    rawName,
		Date:       date(day),
		Branch:     branch,
		Entrance1:  in,
		Exit1:      out,
		Source:     attendance.SourceImport,
	}
	r.Key = attendance.RecordKey(r.EmployeeID, r.Date, r.Branch)
	r.Status = attendance.DeriveStatus(r)
	_, err := f.records.Upsert(context.Background(), r)
	require.NoError(t, err)
}

func summaryFor(t *testing.T, list []report.SummaryResponse, id string) report.SummaryResponse {
	t.Helper()
	for _, s := range list {
		if s.EmployeeID == id {
			return s
		}
	}
	t.Fatalf("no summary for %s", id)
	return report.SummaryResponse{}
}

func daysFor(t *testing.T, list []report.EmployeeDaysResponse, id string) map[string]report.DayResponse {
	t.Helper()
	for _, e := range list {
		if e.EmployeeID == id {
			byDate := make(map[string]report.DayResponse, len(e.Days))
			for _, d := range e.Days {
				byDate[d.Date] = d
			}
			return byDate
		}
	}
	t.Fatalf("no days for %s", id)
	return nil
}

func TestSummaries_Overtime(t *testing.T) {
	f := newFixture(t)
	for d := 1; d <= 25; d++ {
		f.punch(t, "emp-ana", "ANA PEREZ", date("2024-03-01").AddDate(0, 0, d-1).Format("2006-01-02"), "centro", "08:00", "16:00")
	}

	list, err := f.service(45).Summaries(context.Background(), report.RangeRequest{StartDate: "2024-03-01", EndDate: "2024-03-30"})
	require.NoError(t, err)

	ana := summaryFor(t, list, "emp-ana")
	assert.Equal(t, 30, ana.Days)
	assert.Equal(t, 200.0, ana.TotalHours)
	assert.Equal(t, 192.86, ana.ExpectedHours)
	assert.Equal(t, 7.14, ana.OvertimeHours)
	assert.Equal(t, 100.0, ana.ProgressPercent)
	assert.Equal(t, 25, ana.StatusCounts[report.DayStatusPresent])
	assert.Nil(t, ana.Revenue)
	assert.Nil(t, ana.Effectiveness)

	luis := summaryFor(t, list, "emp-luis")
	assert.Equal(t, 0.0, luis.TotalHours)
	assert.Equal(t, 0.0, luis.OvertimeHours)
	assert.Equal(t, 0.0, luis.ProgressPercent)
}

func TestSummaries_HoursAddAcrossBranches(t *testing.T) {
	f := newFixture(t)
	f.punch(t, "emp-ana", "ANA PEREZ", "2024-03-04", "centro", "08:00", "12:00")
	f.punch(t, "emp-ana", "ANA PEREZ", "2024-03-04", "norte", "14:00", "18:30")

	svc := f.service(45)
	list, err := svc.Summaries(context.Background(), report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-04"})
	require.NoError(t, err)
	ana := summaryFor(t, list, "emp-ana")
	assert.Equal(t, 8.5, ana.TotalHours)
	assert.Equal(t, []string{"centro", "norte"}, ana.Branches)

	days, err := svc.Days(context.Background(), report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-04"})
	require.NoError(t, err)
	assert.Equal(t, 8.5, daysFor(t, days, "emp-ana")["2024-03-04"].Hours)
}

func TestDays_Precedence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.holidays.Create(ctx, holiday.Holiday{ID: "h1", Date: date("2024-03-04"), Label: "Carnival"})
	require.NoError(t, err)
	_, err = f.holidays.Create(ctx, holiday.Holiday{ID: "h2", Date: date("2024-03-05"), Label: "Carnival"})
	require.NoError(t, err)
	_, err = f.holidays.Create(ctx, holiday.Holiday{ID: "h3", Date: date("2024-03-09"), Label: "Local"})
	require.NoError(t, err)

	_, err = f.licenses.Create(ctx, leave.License{
		ID: "l1", EmployeeID: "emp-ana", Type: leave.LicenseTypeVacation,
		StartDate: date("2024-03-04"), EndDate: date("2024-03-04"), Days: 1, Status: leave.LicenseStatusApproved,
	})
	require.NoError(t, err)
	_, err = f.licenses.Create(ctx, leave.License{
		ID: "l2", EmployeeID: "emp-ana", Type: leave.LicenseTypeMedical,
		StartDate: date("2024-03-07"), EndDate: date("2024-03-07"), Days: 1, Status: leave.LicenseStatusWaitingApproval,
	})
	require.NoError(t, err)

	// Worked on a holiday: still a holiday, minutes kept
	f.punch(t, "emp-ana", "ANA PEREZ", "2024-03-05", "centro", "09:00", "13:00")
	f.punch(t, "emp-ana", "ANA PEREZ", "2024-03-07", "centro", "09:00", "17:00")
	f.sales.Add(sales.Sale{ID: "s1", Seller: "ANITA", Date: date("2024-03-06"), Amount: decimal.NewFromInt(1200)})

	_, err = f.permits.Create(ctx, leave.SpecialPermit{
		ID: "p1", EmployeeID: "emp-ana", Date: date("2024-03-07"), From: "10:00", To: "11:00", Reason: "Doctor",
	})
	require.NoError(t, err)

	list, err := f.service(45).Days(ctx, report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-11"})
	require.NoError(t, err)
	ana := daysFor(t, list, "emp-ana")

	tests := []struct {
		date   string
		status report.DayStatus
		hours  float64
	}{
		{"2024-03-04", report.DayStatusLicense, 0},
		{"2024-03-05", report.DayStatusHoliday, 4},
		{"2024-03-06", report.DayStatusAnomaly, 0},
		{"2024-03-07", report.DayStatusPresent, 8},
		{"2024-03-08", report.DayStatusOff, 0},
		{"2024-03-09", report.DayStatusHoliday, 0},
		{"2024-03-10", report.DayStatusWeekend, 0},
		{"2024-03-11", report.DayStatusOff, 0},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			day := ana[tt.date]
			assert.Equal(t, tt.status, day.Status)
			assert.Equal(t, tt.hours, day.Hours)
		})
	}

	assert.Equal(t, "vacation", ana["2024-03-04"].LicenseType)
	assert.Equal(t, "Carnival", ana["2024-03-05"].HolidayLabel)
	assert.Equal(t, 8.0, ana["2024-03-05"].HolidayHours)
	assert.Equal(t, 4.0, ana["2024-03-09"].HolidayHours)
	require.Len(t, ana["2024-03-07"].Permits, 1)
	assert.Equal(t, "Doctor", ana["2024-03-07"].Permits[0].Reason)

	// Luis sold nothing: the holidays apply to him too
	luis := daysFor(t, list, "emp-luis")
	assert.Equal(t, report.DayStatusHoliday, luis["2024-03-04"].Status)
	assert.Equal(t, report.DayStatusOff, luis["2024-03-06"].Status)
}

func TestSummaries_HolidayHoursIndependentOfWeeklyBase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.holidays.Create(ctx, holiday.Holiday{ID: "h1", Date: date("2024-03-08"), Label: "Women's day"})
	require.NoError(t, err)
	_, err = f.holidays.Create(ctx, holiday.Holiday{ID: "h2", Date: date("2024-03-09"), Label: "Local"})
	require.NoError(t, err)

	req := report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-10"}
	for _, base := range []float64{40, 45, 48} {
		list, err := f.service(base).Summaries(ctx, req)
		require.NoError(t, err)
		ana := summaryFor(t, list, "emp-ana")
		assert.Equal(t, 12.0, ana.HolidayHours)
		assert.Equal(t, base, ana.ExpectedHours)
		assert.Equal(t, 0.0, ana.OvertimeHours)
	}
}

func TestSummaries_RevenueAndEffectiveness(t *testing.T) {
	f := newFixture(t)
	f.punch(t, "emp-ana", "ANA PEREZ", "2024-03-04", "centro", "08:00", "16:00")
	f.sales.Add(
		sales.Sale{ID: "s1", Seller: "anita", Date: date("2024-03-04"), Amount: decimal.NewFromInt(500)},
		sales.Sale{ID: "s2", Seller: "Anita ", Date: date("2024-03-05"), Amount: decimal.RequireFromString("300.50")},
		sales.Sale{ID: "s3", Seller: "Anita", Date: date("2024-04-01"), Amount: decimal.NewFromInt(9999)},
	)

	list, err := f.service(45).Summaries(context.Background(), report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-05"})
	require.NoError(t, err)

	ana := summaryFor(t, list, "emp-ana")
	require.NotNil(t, ana.Revenue)
	assert.Equal(t, "800.5", ana.Revenue.String())
	require.NotNil(t, ana.Effectiveness)
	assert.Equal(t, "100.06", ana.Effectiveness.StringFixed(2))
	assert.Equal(t, 1, ana.StatusCounts[report.DayStatusAnomaly])

	luis := summaryFor(t, list, "emp-luis")
	assert.Nil(t, luis.Revenue)
}

func TestSummaries_VirtualIdentities(t *testing.T) {
	f := newFixture(t)
	f.punch(t, "virtual-juan-gomez", "JUAN  GOMEZ", "2024-03-04", "unassigned", "08:00", "12:00")

	svc := f.service(45)
	list, err := svc.Summaries(context.Background(), report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-10"})
	require.NoError(t, err)
	require.Len(t, list, 3)

	v := summaryFor(t, list, "virtual-juan-gomez")
	assert.True(t, v.Virtual)
	assert.Equal(t, "Juan Gomez", v.Name)
	assert.Equal(t, []string{"unassigned"}, v.Branches)
	assert.Equal(t, 4.0, v.TotalHours)

	// Outside the window the virtual identity drops out of scope
	list, err = svc.Summaries(context.Background(), report.RangeRequest{StartDate: "2024-04-01", EndDate: "2024-04-07"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSummaries_Filters(t *testing.T) {
	f := newFixture(t)
	f.punch(t, "emp-luis", "LUIS DIAZ", "2024-03-04", "centro", "08:00", "12:00")
	f.punch(t, "emp-luis", "LUIS DIAZ", "2024-03-05", "norte", "08:00", "12:00")
	svc := f.service(45)
	ctx := context.Background()

	centro := "centro"
	list, err := svc.Summaries(ctx, report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-05", Branch: &centro})
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Totals are not narrowed by the branch filter
	assert.Equal(t, 8.0, summaryFor(t, list, "emp-luis").TotalHours)
	assert.Equal(t, []string{"norte", "centro"}, summaryFor(t, list, "emp-luis").Branches)

	emp := "emp-ana"
	list, err = svc.Summaries(ctx, report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-05", EmployeeID: &emp})
	require.NoError(t, err)
	require.Len(t, list, 1)

	missing := "emp-nobody"
	_, err = svc.Summaries(ctx, report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-05", EmployeeID: &missing})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSummaries_InvalidRange(t *testing.T) {
	svc := newFixture(t).service(45)
	ctx := context.Background()

	_, err := svc.Summaries(ctx, report.RangeRequest{StartDate: "2024-03-10", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	_, err = svc.Summaries(ctx, report.RangeRequest{StartDate: "2023-01-01", EndDate: "2024-12-31"})
	assert.ErrorIs(t, err, report.ErrRangeTooLarge)

	_, err = svc.Summaries(ctx, report.RangeRequest{StartDate: "10/03/2024", EndDate: "2024-03-01"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	f.punch(t, "emp-ana", "ANA PEREZ", "2024-03-04", "centro", "08:00", "16:00")
	f.sales.Add(sales.Sale{ID: "s1", Seller: "Anita", Date: date("2024-03-04"), Amount: decimal.NewFromInt(800)})
	svc := f.service(45)
	ctx := context.Background()
	rng := report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-10"}

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, report.ExportRequest{RangeRequest: rng, Format: report.ExportFormatCSV}, &buf))

		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, exportHeader, rows[0])
		assert.Equal(t, []string{"Ana Pérez", "centro", "8.00", "45.00", "0.00", "800.00", "100.00"}, rows[1])
		assert.Equal(t, []string{"Luis Díaz", "norte", "0.00", "45.00", "0.00", "", ""}, rows[2])
	})

	t.Run("xlsx", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, report.ExportRequest{RangeRequest: rng, Format: report.ExportFormatXLSX}, &buf))

		book, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer book.Close()
		rows, err := book.GetRows(exportSheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Ana Pérez", rows[1][0])
		assert.Equal(t, "8", rows[1][2])
	})

	t.Run("unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		err := svc.Export(ctx, report.ExportRequest{RangeRequest: rng, Format: "pdf"}, &buf)
		assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
	})
}

func TestConsolidateBranches(t *testing.T) {
	records := []attendance.Record{
		{Branch: "sur"}, {Branch: "centro"}, {Branch: "manual"}, {Branch: "sur"}, {Branch: "norte"},
	}
	assert.Equal(t, []string{"centro", "manual", "norte", "sur"}, ConsolidateBranches("centro", records))
	assert.Empty(t, ConsolidateBranches("", nil))
	assert.Equal(t, []string{"oeste"}, ConsolidateBranches("oeste", nil))
}

func TestProgressAndOvertime(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		expected float64
		overtime float64
		progress float64
	}{
		{"under", 20, 40, 0, 50},
		{"over", 50, 40, 10, 100},
		{"nothing expected", 5, 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overtime, Overtime(tt.total, tt.expected))
			assert.Equal(t, tt.progress, Progress(tt.total, tt.expected))
		})
	}
}
