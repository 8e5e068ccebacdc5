package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// Flusher waits for queued writes to reach durable storage.
type Flusher interface {
	Flush(ctx context.Context) error
}

type IdentityServiceImpl struct {
	identity.AliasRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	flusher Flusher
	// batchMu serializes batch mutations with the attendance service.
	batchMu *sync.Mutex
}

func NewIdentityService(
	aliases identity.AliasRepository,
	employees employee.EmployeeRepository,
	records attendance.AttendanceRepository,
	flusher Flusher,
	batchMu *sync.Mutex,
) identity.IdentityService {
	return &IdentityServiceImpl{
		AliasRepository:      aliases,
		EmployeeRepository:   employees,
		AttendanceRepository: records,
		flusher:              flusher,
		batchMu:              batchMu,
	}
}

// CreateAlias implements identity.IdentityService.
func (s *IdentityServiceImpl) CreateAlias(ctx context.Context, req identity.CreateAliasRequest) (identity.AliasResponse, error) {
	if err := req.Validate(); err != nil {
		return identity.AliasResponse{}, err
	}

	normalized := identity.NormalizeName(req.RawName)
	if normalized == "" {
		return identity.AliasResponse{}, validator.ValidationErrors{
			{Field: "raw_name", Message: "raw_name must contain letters or digits"},
		}
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return identity.AliasResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return identity.AliasResponse{}, fmt.Errorf("failed to generate alias id: %w", err)
	}

	created, err := s.AliasRepository.Create(ctx, identity.AliasMapping{
		ID:             id.String(),
		RawName:        req.RawName,
		NormalizedName: normalized,
		EmployeeID:     req.EmployeeID,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return identity.AliasResponse{}, err
	}

	return identity.ToAliasResponse(created), nil
}

// ListAliases implements identity.IdentityService.
func (s *IdentityServiceImpl) ListAliases(ctx context.Context) ([]identity.AliasResponse, error) {
	mappings, err := s.AliasRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}

	responses := make([]identity.AliasResponse, 0, len(mappings))
	for _, m := range mappings {
		responses = append(responses, identity.ToAliasResponse(m))
	}
	return responses, nil
}

// DeleteAlias implements identity.IdentityService.
func (s *IdentityServiceImpl) DeleteAlias(ctx context.Context, id string) error {
	return s.AliasRepository.Delete(ctx, id)
}

// ListVirtualIdentities implements identity.IdentityService.
func (s *IdentityServiceImpl) ListVirtualIdentities(ctx context.Context) ([]identity.VirtualIdentityResponse, error) {
	records, err := s.AttendanceRepository.List(ctx, attendance.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	byID := make(map[string]*identity.VirtualIdentity)
	names := make(map[string]map[string]struct{})
	for _, r := range records {
		if !identity.IsVirtual(r.EmployeeID) {
			continue
		}
		v, ok := byID[r.EmployeeID]
		if !ok {
			v = &identity.VirtualIdentity{ID: r.EmployeeID, FirstDate: r.Date, LastDate: r.Date}
			byID[r.EmployeeID] = v
			names[r.EmployeeID] = make(map[string]struct{})
		}
		v.RecordCount++
		if r.Date.Before(v.FirstDate) {
			v.FirstDate = r.Date
		}
		if r.Date.After(v.LastDate) {
			v.LastDate = r.Date
		}
		if r.RawName != "" {
			names[r.EmployeeID][r.RawName] = struct{}{}
		}
	}

	responses := make([]identity.VirtualIdentityResponse, 0, len(byID))
	for id, v := range byID {
		for name := range names[id] {
			v.RawNames = append(v.RawNames, name)
		}
		sort.Strings(v.RawNames)
		responses = append(responses, identity.ToVirtualIdentityResponse(*v))
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].ID < responses[j].ID })
	return responses, nil
}

// Relink implements identity.IdentityService.
func (s *IdentityServiceImpl) Relink(ctx context.Context, req identity.RelinkRequest) (identity.RelinkResult, error) {
	if err := req.Validate(); err != nil {
		return identity.RelinkResult{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return identity.RelinkResult{}, err
	}

	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	virtualID := req.VirtualID
	records, err := s.AttendanceRepository.List(ctx, attendance.Filter{EmployeeID: &virtualID})
	if err != nil {
		return identity.RelinkResult{}, fmt.Errorf("failed to list virtual records: %w", err)
	}
	if len(records) == 0 {
		return identity.RelinkResult{}, identity.ErrVirtualIdentityUnknown
	}

	result := identity.RelinkResult{
		VirtualID:      req.VirtualID,
		EmployeeID:     req.EmployeeID,
		Collisions:     []string{},
		AliasesCreated: []string{},
	}

	// Remember every spelling seen on the virtual records so future imports resolve directly
	seen := make(map[string]struct{})
	for _, r := range records {
		normalized := identity.NormalizeName(r.RawName)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}

		created, err := s.rememberAlias(ctx, r.RawName, normalized, req.EmployeeID)
		if err != nil {
			return result, err
		}
		if created {
			result.AliasesCreated = append(result.AliasesCreated, r.RawName)
		}
	}

	for _, r := range records {
		moved := r.Rekey(req.EmployeeID)

		existing, err := s.AttendanceRepository.GetByKey(ctx, moved.Key)
		if err != nil {
			return result, fmt.Errorf("failed to check record %s: %w", moved.Key, err)
		}
		if existing != nil {
			slog.Warn("Relink collision, keeping existing record",
				"virtual_id", req.VirtualID,
				"employee_id", req.EmployeeID,
				"dropped_key", r.Key,
				"kept_key", existing.Key,
			)
			if err := s.AttendanceRepository.Delete(ctx, r.Key); err != nil {
				return result, fmt.Errorf("failed to drop colliding record %s: %w", r.Key, err)
			}
			result.Collisions = append(result.Collisions, r.Key)
			continue
		}

		if _, err := s.AttendanceRepository.Upsert(ctx, moved); err != nil {
			return result, fmt.Errorf("failed to move record %s: %w", r.Key, err)
		}
		if err := s.AttendanceRepository.Delete(ctx, r.Key); err != nil {
			return result, fmt.Errorf("failed to remove virtual record %s: %w", r.Key, err)
		}
		result.Moved++
	}

	if err := s.flusher.Flush(ctx); err != nil {
		return result, fmt.Errorf("failed to persist relink: %w", err)
	}

	slog.Info("Virtual identity relinked",
		"virtual_id", req.VirtualID,
		"employee_id", req.EmployeeID,
		"moved", result.Moved,
		"collisions", len(result.Collisions),
		"aliases_created", len(result.AliasesCreated),
	)
	return result, nil
}

// rememberAlias points normalized at employeeID, replacing a mapping that
// pointed elsewhere. It reports whether a mapping was written.
func (s *IdentityServiceImpl) rememberAlias(ctx context.Context, rawName, normalized, employeeID string) (bool, error) {
	existing, err := s.AliasRepository.GetByNormalizedName(ctx, normalized)
	if err != nil {
		return false, fmt.Errorf("failed to look up alias: %w", err)
	}
	if existing != nil {
		if existing.EmployeeID == employeeID {
			return false, nil
		}
		slog.Warn("Relink repoints alias",
			"raw_name", rawName,
			"from_employee_id", existing.EmployeeID,
			"to_employee_id", employeeID,
		)
		if err := s.AliasRepository.Delete(ctx, existing.ID); err != nil && !errors.Is(err, identity.ErrAliasNotFound) {
			return false, fmt.Errorf("failed to replace alias: %w", err)
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("failed to generate alias id: %w", err)
	}
	if _, err := s.AliasRepository.Create(ctx, identity.AliasMapping{
		ID:             id.String(),
		RawName:        rawName,
		NormalizedName: normalized,
		EmployeeID:     employeeID,
		CreatedAt:      time.Now().UTC(),
	}); err != nil {
		return false, fmt.Errorf("failed to create alias: %w", err)
	}
	return true, nil
}
