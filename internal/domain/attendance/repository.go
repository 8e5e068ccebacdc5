package attendance

import (
	"context"
)

// AttendanceRepository stores records by composite key.
type AttendanceRepository interface {
	// Upsert inserts the record or replaces the whole record stored under the same key.
	Upsert(ctx context.Context, record Record) (replaced bool, err error)

	// GetByKey returns nil when no record has the key.
	GetByKey(ctx context.Context, key string) (*Record, error)

	List(ctx context.Context, filter Filter) ([]Record, error)

	Delete(ctx context.Context, key string) error

	// DeleteAll wipes every record and returns how many were removed.
	DeleteAll(ctx context.Context) (int, error)
}
