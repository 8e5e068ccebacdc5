package report

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/report"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/sales"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	employees  employee.EmployeeRepository
	records    attendance.AttendanceRepository
	holidays   holiday.HolidayRepository
	licenses   leave.LicenseRepository
	permits    leave.PermitRepository
	sales      sales.SalesRepository
	weeklyBase float64
}

func NewReportService(
	employees employee.EmployeeRepository,
	records attendance.AttendanceRepository,
	holidays holiday.HolidayRepository,
	licenses leave.LicenseRepository,
	permits leave.PermitRepository,
	salesRepo sales.SalesRepository,
	weeklyBase float64,
) report.ReportService {
	return &ReportServiceImpl{
		employees:  employees,
		records:    records,
		holidays:   holidays,
		licenses:   licenses,
		permits:    permits,
		sales:      salesRepo,
		weeklyBase: weeklyBase,
	}
}

// subject is one identity in report scope, real or virtual.
type subject struct {
	id       string
	name     string
	seller   string
	virtual  bool
	branches []string
	days     []report.Day
	revenue  *decimal.Decimal
}

// period is the reference data of one report window, loaded once per query.
type period struct {
	from, to  time.Time
	records   map[string][]attendance.Record
	holidays  map[string]holiday.Holiday
	licenses  map[string][]leave.License
	permits   map[string]map[string][]leave.SpecialPermit
	saleDays  map[string]map[string]bool
	saleTotal map[string]decimal.Decimal
}

// Days implements report.ReportService.
func (s *ReportServiceImpl) Days(ctx context.Context, req report.RangeRequest) ([]report.EmployeeDaysResponse, error) {
	subjects, _, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}

	result := make([]report.EmployeeDaysResponse, 0, len(subjects))
	for _, sub := range subjects {
		days := make([]report.DayResponse, 0, len(sub.days))
		for _, d := range sub.days {
			days = append(days, report.ToDayResponse(d))
		}
		result = append(result, report.EmployeeDaysResponse{
			EmployeeID: sub.id,
			Name:       sub.name,
			Branches:   sub.branches,
			Days:       days,
		})
	}
	return result, nil
}

// Summaries implements report.ReportService.
func (s *ReportServiceImpl) Summaries(ctx context.Context, req report.RangeRequest) ([]report.SummaryResponse, error) {
	summaries, err := s.summarize(ctx, req)
	if err != nil {
		return nil, err
	}

	result := make([]report.SummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		result = append(result, report.ToSummaryResponse(sum))
	}
	return result, nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest, w io.Writer) error {
	if req.Format != report.ExportFormatCSV && req.Format != report.ExportFormatXLSX {
		return report.ErrUnsupportedFormat
	}

	summaries, err := s.summarize(ctx, req.RangeRequest)
	if err != nil {
		return err
	}

	if req.Format == report.ExportFormatXLSX {
		return WriteXLSX(w, summaries)
	}
	return WriteCSV(w, summaries)
}

func (s *ReportServiceImpl) summarize(ctx context.Context, req report.RangeRequest) ([]report.EmployeeSummary, error) {
	subjects, p, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}

	summaries := make([]report.EmployeeSummary, 0, len(subjects))
	for _, sub := range subjects {
		summaries = append(summaries, report.EmployeeSummary{
			EmployeeID: sub.id,
			Name:       sub.name,
			Branches:   sub.branches,
			Virtual:    sub.virtual,
			Hours:      ComputeHours(sub.days, p.from, p.to, s.weeklyBase, sub.revenue),
		})
	}
	return summaries, nil
}

// build resolves the scope of a request and classifies every day for every subject.
func (s *ReportServiceImpl) build(ctx context.Context, req report.RangeRequest) ([]*subject, *period, error) {
	from, to, err := req.Parse()
	if err != nil {
		return nil, nil, err
	}

	p, err := s.loadPeriod(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}

	subjects, err := s.scope(ctx, p, req.EmployeeID)
	if err != nil {
		return nil, nil, err
	}

	var scoped []*subject
	for _, sub := range subjects {
		if req.Branch != nil && !slices.Contains(sub.branches, *req.Branch) {
			continue
		}
		s.classify(sub, p)
		scoped = append(scoped, sub)
	}
	return scoped, p, nil
}

func (s *ReportServiceImpl) loadPeriod(ctx context.Context, from, to time.Time) (*period, error) {
	records, err := s.records.List(ctx, attendance.Filter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	holidays, err := s.holidays.List(ctx, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	approved := leave.LicenseStatusApproved
	licenses, err := s.licenses.List(ctx, leave.LicenseFilter{Status: &approved, From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	permits, err := s.permits.List(ctx, leave.PermitFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to list permits: %w", err)
	}
	salesInRange, err := s.sales.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	p := &period{
		from:      from,
		to:        to,
		records:   utils.GroupBy(records, func(r attendance.Record) string { return r.EmployeeID }),
		holidays:  make(map[string]holiday.Holiday, len(holidays)),
		licenses:  utils.GroupBy(licenses, func(l leave.License) string { return l.EmployeeID }),
		permits:   make(map[string]map[string][]leave.SpecialPermit),
		saleDays:  make(map[string]map[string]bool),
		saleTotal: make(map[string]decimal.Decimal),
	}
	for _, h := range holidays {
		p.holidays[utils.FormatDate(h.Date)] = h
	}
	for _, pm := range permits {
		if p.permits[pm.EmployeeID] == nil {
			p.permits[pm.EmployeeID] = make(map[string][]leave.SpecialPermit)
		}
		day := utils.FormatDate(pm.Date)
		p.permits[pm.EmployeeID][day] = append(p.permits[pm.EmployeeID][day], pm)
	}
	for _, sale := range salesInRange {
		seller := utils.FoldName(sale.Seller)
		if p.saleDays[seller] == nil {
			p.saleDays[seller] = make(map[string]bool)
		}
		p.saleDays[seller][utils.FormatDate(sale.Date)] = true
		p.saleTotal[seller] = p.saleTotal[seller].Add(sale.Amount)
	}
	return p, nil
}

// scope lists real employees followed by every virtual identity with records in the window.
func (s *ReportServiceImpl) scope(ctx context.Context, p *period, employeeID *string) ([]*subject, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var subjects []*subject
	for _, e := range employees {
		if employeeID != nil && e.ID != *employeeID {
			continue
		}
		subjects = append(subjects, &subject{
			id:       e.ID,
			name:     e.FullName,
			seller:   utils.FoldName(e.SellerName()),
			branches: ConsolidateBranches(e.BranchID, p.records[e.ID]),
		})
	}

	var virtualIDs []string
	for id := range p.records {
		if identity.IsVirtual(id) && (employeeID == nil || id == *employeeID) {
			virtualIDs = append(virtualIDs, id)
		}
	}
	sort.Strings(virtualIDs)
	for _, id := range virtualIDs {
		records := p.records[id]
		subjects = append(subjects, &subject{
			id:       id,
			name:     utils.DisplayName(records[0].RawName),
			virtual:  true,
			branches: ConsolidateBranches("", records),
		})
	}

	if employeeID != nil && len(subjects) == 0 {
		return nil, employee.ErrEmployeeNotFound
	}
	return subjects, nil
}

func (s *ReportServiceImpl) classify(sub *subject, p *period) {
	minutes := attendance.DailyMinutes(p.records[sub.id])[sub.id]

	var saleDays map[string]bool
	if sub.seller != "" {
		saleDays = p.saleDays[sub.seller]
		if total, ok := p.saleTotal[sub.seller]; ok {
			sub.revenue = &total
		}
	}

	utils.EachDay(p.from, p.to, func(day time.Time) {
		key := utils.FormatDate(day)
		facts := DayFacts{
			Date:    day,
			Minutes: minutes[key],
			HasSale: saleDays[key],
			Permits: p.permits[sub.id][key],
		}
		if h, ok := p.holidays[key]; ok {
			facts.Holiday = &h
		}
		for i := range p.licenses[sub.id] {
			if p.licenses[sub.id][i].Covers(day) {
				facts.License = &p.licenses[sub.id][i]
				break
			}
		}
		sub.days = append(sub.days, Classify(facts))
	})
}
