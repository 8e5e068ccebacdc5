package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/timebank"
	"github.com/google/uuid"
)

type entryRepository struct {
	mu      sync.RWMutex
	entries map[string]timebank.Entry
}

func NewEntryRepository() timebank.EntryRepository {
	return &entryRepository{entries: make(map[string]timebank.Entry)}
}

// Create implements timebank.EntryRepository.
func (r *entryRepository) Create(ctx context.Context, entry timebank.Entry) (timebank.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return timebank.Entry{}, err
		}
		entry.ID = id.String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries[entry.ID] = entry
	return entry, nil
}

// GetByID implements timebank.EntryRepository.
func (r *entryRepository) GetByID(ctx context.Context, id string) (timebank.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return timebank.Entry{}, timebank.ErrEntryNotFound
	}
	return e, nil
}

// Delete implements timebank.EntryRepository.
func (r *entryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return timebank.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

// List implements timebank.EntryRepository.
func (r *entryRepository) List(ctx context.Context, filter timebank.Filter) ([]timebank.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]timebank.Entry, 0)
	for _, e := range r.entries {
		if filter.Matches(e) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
