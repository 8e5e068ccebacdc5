// Package writeback layers an in-memory working set over a durable store.
// Reads are served from memory. Each mutation is applied in memory first and
// the same change is then queued for the durable store.
package writeback

import (
	"context"
	"fmt"
)

// Enqueuer schedules a durable write; persist.Queue satisfies it.
type Enqueuer interface {
	Enqueue(name string, fn func(ctx context.Context) error) error
}

func schedule(q Enqueuer, name string, fn func(ctx context.Context) error) error {
	if err := q.Enqueue(name, fn); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	return nil
}
