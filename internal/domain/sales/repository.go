package sales

import (
	"context"
	"time"
)

// SalesRepository is a read-only view over the sales subsystem.
type SalesRepository interface {
	ListByRange(ctx context.Context, from, to time.Time) ([]Sale, error)
}
