package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/google/uuid"
)

type holidayRepository struct {
	mu       sync.RWMutex
	holidays map[string]holiday.Holiday
}

func NewHolidayRepository() holiday.HolidayRepository {
	return &holidayRepository{holidays: make(map[string]holiday.Holiday)}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h.Date = utils.DateOnly(h.Date)
	for _, existing := range r.holidays {
		if existing.Date.Equal(h.Date) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
	}
	if h.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return holiday.Holiday{}, err
		}
		h.ID = id.String()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	r.holidays[h.ID] = h
	return h, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(r.holidays, id)
	return nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepository) List(ctx context.Context, from, to *time.Time) ([]holiday.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]holiday.Holiday, 0)
	for _, h := range r.holidays {
		if utils.WithinRange(h.Date, from, to) {
			result = append(result, h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}
