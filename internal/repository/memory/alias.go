package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/google/uuid"
)

type aliasRepository struct {
	mu      sync.RWMutex
	aliases map[string]identity.AliasMapping // by ID
}

func NewAliasRepository() identity.AliasRepository {
	return &aliasRepository{aliases: make(map[string]identity.AliasMapping)}
}

// Create implements identity.AliasRepository.
func (r *aliasRepository) Create(ctx context.Context, mapping identity.AliasMapping) (identity.AliasMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.aliases {
		if existing.NormalizedName == mapping.NormalizedName {
			return identity.AliasMapping{}, identity.ErrAliasExists
		}
	}
	if mapping.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return identity.AliasMapping{}, err
		}
		mapping.ID = id.String()
	}
	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now().UTC()
	}
	r.aliases[mapping.ID] = mapping
	return mapping, nil
}

// GetByNormalizedName implements identity.AliasRepository.
func (r *aliasRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (*identity.AliasMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.aliases {
		if m.NormalizedName == normalizedName {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

// List implements identity.AliasRepository.
func (r *aliasRepository) List(ctx context.Context) ([]identity.AliasMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]identity.AliasMapping, 0, len(r.aliases))
	for _, m := range r.aliases {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NormalizedName < result[j].NormalizedName })
	return result, nil
}

// Delete implements identity.AliasRepository.
func (r *aliasRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.aliases[id]; !ok {
		return identity.ErrAliasNotFound
	}
	delete(r.aliases, id)
	return nil
}
