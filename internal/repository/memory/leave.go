package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/google/uuid"
)

type licenseRepository struct {
	mu       sync.RWMutex
	licenses map[string]leave.License
}

func NewLicenseRepository() leave.LicenseRepository {
	return &licenseRepository{licenses: make(map[string]leave.License)}
}

// Create implements leave.LicenseRepository.
func (r *licenseRepository) Create(ctx context.Context, license leave.License) (leave.License, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if license.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.License{}, err
		}
		license.ID = id.String()
	}
	now := time.Now().UTC()
	if license.CreatedAt.IsZero() {
		license.CreatedAt = now
	}
	if license.UpdatedAt.IsZero() {
		license.UpdatedAt = now
	}
	r.licenses[license.ID] = license
	return license, nil
}

// GetByID implements leave.LicenseRepository.
func (r *licenseRepository) GetByID(ctx context.Context, id string) (leave.License, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.licenses[id]
	if !ok {
		return leave.License{}, leave.ErrLicenseNotFound
	}
	return l, nil
}

// Update implements leave.LicenseRepository.
func (r *licenseRepository) Update(ctx context.Context, license leave.License) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.licenses[license.ID]; !ok {
		return leave.ErrLicenseNotFound
	}
	r.licenses[license.ID] = license
	return nil
}

// Delete implements leave.LicenseRepository.
func (r *licenseRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.licenses[id]; !ok {
		return leave.ErrLicenseNotFound
	}
	delete(r.licenses, id)
	return nil
}

// List implements leave.LicenseRepository.
func (r *licenseRepository) List(ctx context.Context, filter leave.LicenseFilter) ([]leave.License, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]leave.License, 0)
	for _, l := range r.licenses {
		if filter.Matches(l) {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

type permitRepository struct {
	mu      sync.RWMutex
	permits map[string]leave.SpecialPermit
}

func NewPermitRepository() leave.PermitRepository {
	return &permitRepository{permits: make(map[string]leave.SpecialPermit)}
}

// Create implements leave.PermitRepository.
func (r *permitRepository) Create(ctx context.Context, permit leave.SpecialPermit) (leave.SpecialPermit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if permit.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.SpecialPermit{}, err
		}
		permit.ID = id.String()
	}
	if permit.CreatedAt.IsZero() {
		permit.CreatedAt = time.Now().UTC()
	}
	r.permits[permit.ID] = permit
	return permit, nil
}

// Delete implements leave.PermitRepository.
func (r *permitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.permits[id]; !ok {
		return leave.ErrPermitNotFound
	}
	delete(r.permits, id)
	return nil
}

// List implements leave.PermitRepository.
func (r *permitRepository) List(ctx context.Context, filter leave.PermitFilter) ([]leave.SpecialPermit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]leave.SpecialPermit, 0)
	for _, p := range r.permits {
		if filter.Matches(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].From < result[j].From
	})
	return result, nil
}
