package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/config"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/sheet"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	identitysvc "github.com/cmlabs-hris/timekeeping-go/internal/service/identity"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	identity.AliasRepository
	archive storage.FileStorage
	flusher identitysvc.Flusher
	// batchMu serializes batch mutations with the identity service.
	batchMu  *sync.Mutex
	imports  config.ImportConfig
	clearTTL time.Duration
	now      func() time.Time

	clearMu     sync.Mutex
	clearTokens map[string]time.Time
}

func NewAttendanceService(
	records attendance.AttendanceRepository,
	employees employee.EmployeeRepository,
	aliases identity.AliasRepository,
	archive storage.FileStorage,
	flusher identitysvc.Flusher,
	batchMu *sync.Mutex,
	imports config.ImportConfig,
	clearTTL time.Duration,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: records,
		EmployeeRepository:   employees,
		AliasRepository:      aliases,
		archive:              archive,
		flusher:              flusher,
		batchMu:              batchMu,
		imports:              imports,
		clearTTL:             clearTTL,
		now:                  time.Now,
		clearTokens:          make(map[string]time.Time),
	}
}

// rowContext is the identity carried from header rows to the dated rows below them.
type rowContext struct {
	taxID         string
	taxEmployeeID string
	rawName       string
}

func (c rowContext) empty() bool {
	return c.taxID == "" && c.rawName == ""
}

// apply updates the context with what a row carries. A new tax id or a new
// name starts a new block.
func (c rowContext) apply(found identityCells, resolver *identitysvc.Resolver) rowContext {
	if found.taxID == "" && found.name == "" {
		return c
	}
	next := rowContext{}
	if found.taxID != "" {
		next.taxID = found.taxID
		next.taxEmployeeID, _ = resolver.MatchTaxID(found.taxID)
	} else if c.rawName == "" || identity.NormalizeName(found.name) == identity.NormalizeName(c.rawName) {
		// A name under a bare tax id, or the same name repeated, stays in the tax id block
		next.taxID, next.taxEmployeeID = c.taxID, c.taxEmployeeID
	}
	next.rawName = found.name
	if next.rawName == "" && found.taxID == c.taxID {
		next.rawName = c.rawName
	}
	return next
}

// displayName is the raw name recorded on the row; a lone tax id stands in for it.
func (c rowContext) displayName() string {
	if c.rawName != "" {
		return c.rawName
	}
	return c.taxID
}

// Import implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Import(ctx context.Context, req attendance.ImportRequest) (attendance.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportResult{}, err
	}
	if req.RowCount() == 0 {
		return attendance.ImportResult{}, attendance.ErrEmptyImport
	}

	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	resolver, err := identitysvc.NewResolver(ctx, s.EmployeeRepository, s.AliasRepository)
	if err != nil {
		return attendance.ImportResult{}, err
	}

	branch := inferBranch(req.Branch, req.SourceName, s.imports.BranchHints, s.imports.DefaultBranch)
	result := attendance.ImportResult{
		SourceName: req.SourceName,
		Branch:     branch,
		Rows:       req.RowCount(),
		Skipped:    []attendance.SkippedRow{},
		Resolution: make(map[string]int),
	}
	now := s.now().UTC()

	for _, sh := range req.Sheets {
		if err := s.importSheet(ctx, sh, resolver, branch, req.SourceName, now, &result); err != nil {
			return result, err
		}
	}

	if s.archive != nil && len(req.Raw) > 0 {
		key := path.Join("imports", utils.FormatDate(now), filepath.Base(req.SourceName))
		archived, err := s.archive.Save(ctx, bytes.NewReader(req.Raw), key)
		if err != nil {
			slog.Error("Failed to archive import source", "source", req.SourceName, "error", err)
		} else {
			result.ArchivedAs = archived
		}
	}

	if err := s.flusher.Flush(ctx); err != nil {
		return result, fmt.Errorf("failed to persist import: %w", err)
	}

	slog.Info("Attendance import completed",
		"source", req.SourceName,
		"branch", branch,
		"rows", result.Rows,
		"inserted", result.Inserted,
		"replaced", result.Replaced,
		"skipped", len(result.Skipped),
	)
	return result, nil
}

// importSheet stores the dated rows of one sheet. Row failures are recorded in
// result; only storage errors abort.
func (s *AttendanceServiceImpl) importSheet(
	ctx context.Context,
	sh sheet.Sheet,
	resolver *identitysvc.Resolver,
	branch, sourceName string,
	now time.Time,
	result *attendance.ImportResult,
) error {
	skip := func(line int, reason string) {
		result.Skipped = append(result.Skipped, attendance.SkippedRow{Sheet: sh.Name, Line: line, Reason: reason})
	}
	malformed := make(map[int]bool, len(sh.Malformed))
	for _, i := range sh.Malformed {
		malformed[i] = true
	}

	var current rowContext
	for i, row := range sh.Rows {
		line := i + 1
		if malformed[i] {
			skip(line, sheet.ErrMalformedRecord.Error())
			continue
		}
		if isBlank(row) {
			continue
		}

		dateIdx, date := findDate(row)
		if dateIdx < 0 {
			found := scanIdentity(row, false)
			if found.taxID == "" && found.name == "" {
				skip(line, "no date or identity in row")
				continue
			}
			current = current.apply(found, resolver)
			continue
		}

		// Identity cells in front of the date belong to this row and the ones after it
		current = current.apply(scanIdentity(row[:dateIdx], true), resolver)
		if current.empty() {
			skip(line, identity.ErrUnresolvable.Error())
			continue
		}

		res, err := resolver.Resolve(ctx, current.displayName(), current.taxEmployeeID)
		if err != nil {
			if errors.Is(err, identity.ErrUnresolvable) {
				skip(line, err.Error())
				continue
			}
			return err
		}

		p := punches(row, dateIdx)
		record := attendance.Record{
			Key:        attendance.RecordKey(res.EmployeeID, date, branch),
			EmployeeID: res.EmployeeID,
			RawName:    res.RawName,
			Date:       date,
			Branch:     branch,
			Entrance1:  p[0],
			Exit1:      p[1],
			Entrance2:  p[2],
			Exit2:      p[3],
			Source:     attendance.SourceImport,
			SourceName: sourceName,
			UpdatedAt:  now,
		}
		record.Status = attendance.DeriveStatus(record)

		replaced, err := s.AttendanceRepository.Upsert(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to store record %s: %w", record.Key, err)
		}
		if replaced {
			result.Replaced++
		} else {
			result.Inserted++
		}
		result.Resolution[string(res.Method)]++
	}
	return nil
}

// AddManualEntry implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AddManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := time.Parse(utils.DateLayout, req.Date)
	record := attendance.Record{
		Key:        attendance.RecordKey(emp.ID, date, attendance.ManualBranch),
		EmployeeID: emp.ID,
		RawName:    emp.FullName,
		Date:       date,
		Branch:     attendance.ManualBranch,
		Entrance1:  utils.NormalizeClock(req.Entrance),
		Exit1:      utils.NormalizeClock(req.Exit),
		Source:     attendance.SourceManual,
		SourceName: string(attendance.SourceManual),
		UpdatedAt:  s.now().UTC(),
	}
	record.Status = attendance.DeriveStatus(record)

	if _, err := s.AttendanceRepository.Upsert(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to store manual entry: %w", err)
	}
	return attendance.ToRecordResponse(record), nil
}

// ListRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, req attendance.ListRecordsRequest) ([]attendance.RecordResponse, error) {
	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToRecordResponse(r))
	}
	return responses, nil
}

// DeleteRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteRecord(ctx context.Context, key string) error {
	return s.AttendanceRepository.Delete(ctx, key)
}

// RequestClear implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RequestClear(ctx context.Context) (attendance.ClearConfirmation, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return attendance.ClearConfirmation{}, fmt.Errorf("failed to generate confirmation token: %w", err)
	}
	expiresAt := s.now().UTC().Add(s.clearTTL)

	s.clearMu.Lock()
	defer s.clearMu.Unlock()
	for token, exp := range s.clearTokens {
		if !s.now().Before(exp) {
			delete(s.clearTokens, token)
		}
	}
	s.clearTokens[id.String()] = expiresAt

	return attendance.ClearConfirmation{Token: id.String(), ExpiresAt: expiresAt}, nil
}

// ClearAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClearAll(ctx context.Context, req attendance.ClearRequest) (attendance.ClearResult, error) {
	if req.Token == "" {
		return attendance.ClearResult{}, attendance.ErrConfirmationRequired
	}

	s.clearMu.Lock()
	expiresAt, ok := s.clearTokens[req.Token]
	delete(s.clearTokens, req.Token)
	s.clearMu.Unlock()
	if !ok || !s.now().Before(expiresAt) {
		return attendance.ClearResult{}, attendance.ErrConfirmationInvalid
	}

	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	deleted, err := s.AttendanceRepository.DeleteAll(ctx)
	if err != nil {
		slog.Error("Failed to clear attendance records", "error", err)
		return attendance.ClearResult{}, fmt.Errorf("failed to clear attendance records: %w", err)
	}
	if err := s.flusher.Flush(ctx); err != nil {
		slog.Error("Failed to persist attendance clear", "deleted", deleted, "error", err)
		return attendance.ClearResult{Deleted: deleted}, fmt.Errorf("failed to persist clear: %w", err)
	}

	slog.Warn("Attendance records cleared", "deleted", deleted)
	return attendance.ClearResult{Deleted: deleted}, nil
}
