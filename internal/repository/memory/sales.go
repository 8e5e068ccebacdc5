package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/sales"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
)

// SalesRepository holds sales fed in by tests or a memory-only session.
type SalesRepository struct {
	mu    sync.RWMutex
	sales []sales.Sale
}

func NewSalesRepository(initial ...sales.Sale) *SalesRepository {
	return &SalesRepository{sales: append([]sales.Sale(nil), initial...)}
}

// Add appends sales records.
func (r *SalesRepository) Add(records ...sales.Sale) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, records...)
}

// ListByRange implements sales.SalesRepository.
func (r *SalesRepository) ListByRange(ctx context.Context, from, to time.Time) ([]sales.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]sales.Sale, 0)
	for _, s := range r.sales {
		if utils.WithinRange(s.Date, &from, &to) {
			result = append(result, s)
		}
	}
	return result, nil
}
