package writeback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timekeeping-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncQueue runs each command as soon as it is enqueued.
type syncQueue struct {
	names   []string
	stopped bool
}

func (q *syncQueue) Enqueue(name string, fn func(ctx context.Context) error) error {
	if q.stopped {
		return errors.New("stopped")
	}
	q.names = append(q.names, name)
	return fn(context.Background())
}

func TestAttendanceRepository_WritesThrough(t *testing.T) {
	ctx := context.Background()
	mem, durable := memory.NewAttendanceRepository(), memory.NewAttendanceRepository()
	queue := &syncQueue{}
	repo := NewAttendanceRepository(mem, durable, queue)

	rec := attendance.Record{EmployeeID: "emp-ana", Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Branch: "centro"}
	rec.Key = attendance.RecordKey(rec.EmployeeID, rec.Date, rec.Branch)

	_, err := repo.Upsert(ctx, rec)
	require.NoError(t, err)
	stored, err := durable.GetByKey(ctx, rec.Key)
	require.NoError(t, err)
	assert.NotNil(t, stored)

	require.NoError(t, repo.Delete(ctx, rec.Key))
	stored, err = durable.GetByKey(ctx, rec.Key)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// A failed in-memory mutation never reaches the queue
	assert.ErrorIs(t, repo.Delete(ctx, rec.Key), attendance.ErrRecordNotFound)
	assert.Equal(t, []string{"attendance.upsert", "attendance.delete"}, queue.names)
}

func TestHolidayRepository_QueueStopped(t *testing.T) {
	ctx := context.Background()
	mem, durable := memory.NewHolidayRepository(), memory.NewHolidayRepository()
	repo := NewHolidayRepository(mem, durable, &syncQueue{stopped: true})

	_, err := repo.Create(ctx, holiday.Holiday{ID: "h1", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Label: "Labour day"})
	assert.ErrorContains(t, err, "failed to schedule holiday.create")

	list, err := durable.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}
