package persist

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_RunsCommandsInOrder(t *testing.T) {
	q := NewQueue(8)
	q.Start()
	defer q.Stop(context.Background())

	var mu sync.Mutex
	var order []int
	for i := 0; i < 20; i++ {
		i := i
		require.NoError(t, q.Enqueue("append", func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, i)
			return nil
		}))
	}

	require.NoError(t, q.Flush(context.Background()))
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, order, 20)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestQueue_FlushReportsFailuresOnce(t *testing.T) {
	q := NewQueue(4)
	q.Start()
	defer q.Stop(context.Background())

	boom := errors.New("boom")
	require.NoError(t, q.Enqueue("ok", func(ctx context.Context) error { return nil }))
	require.NoError(t, q.Enqueue("fails", func(ctx context.Context) error { return boom }))

	err := q.Flush(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fails")

	assert.NoError(t, q.Flush(context.Background()), "failures are reported once")
}

func TestQueue_EnqueueAfterStop(t *testing.T) {
	q := NewQueue(1)
	q.Start()
	require.NoError(t, q.Stop(context.Background()))

	err := q.Enqueue("late", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrQueueStopped)
	assert.ErrorIs(t, q.Flush(context.Background()), ErrQueueStopped)
}
