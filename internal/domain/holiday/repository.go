package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	// List returns holidays in [from, to]; nil bounds are open.
	List(ctx context.Context, from, to *time.Time) ([]Holiday, error)
}
