package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrQueueStopped = errors.New("persist queue is stopped")

// Command is one durable write queued after its in-memory counterpart was applied.
type Command struct {
	Name string
	Fn   func(ctx context.Context) error

	// barrier is closed by the worker when every earlier command has run.
	barrier chan struct{}
}

// Queue runs persist commands in order on a single worker.
type Queue struct {
	commands chan Command
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu      sync.Mutex
	failed  []error
	started bool
}

// NewQueue creates a queue buffering up to size commands.
func NewQueue(size int) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		commands: make(chan Command, size),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins running queued commands
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.started = true

	q.wg.Add(1)
	go q.run()
	slog.Info("Persist queue started", "capacity", cap(q.commands))
}

// Enqueue schedules fn. It blocks while the buffer is full.
func (q *Queue) Enqueue(name string, fn func(ctx context.Context) error) error {
	if q.ctx.Err() != nil {
		return ErrQueueStopped
	}
	select {
	case <-q.ctx.Done():
		return ErrQueueStopped
	case q.commands <- Command{Name: name, Fn: fn}:
		return nil
	}
}

// Flush waits until every command enqueued before the call has run and
// returns the failures collected since the previous flush.
func (q *Queue) Flush(ctx context.Context) error {
	if q.ctx.Err() != nil {
		return ErrQueueStopped
	}
	barrier := make(chan struct{})
	select {
	case <-q.ctx.Done():
		return ErrQueueStopped
	case <-ctx.Done():
		return ctx.Err()
	case q.commands <- Command{Name: "flush", barrier: barrier}:
	}

	select {
	case <-barrier:
	case <-ctx.Done():
		return ctx.Err()
	case <-q.ctx.Done():
		return ErrQueueStopped
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	err := errors.Join(q.failed...)
	q.failed = nil
	return err
}

// Stop flushes pending commands and stops the worker
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	started := q.started
	q.mu.Unlock()
	if !started {
		q.cancel()
		return nil
	}

	slog.Info("Stopping persist queue...")
	err := q.Flush(ctx)
	q.cancel()
	q.wg.Wait()
	slog.Info("Persist queue stopped")
	return err
}

func (q *Queue) run() {
	defer q.wg.Done()

	for {
		select {
		case <-q.ctx.Done():
			return
		case cmd := <-q.commands:
			if cmd.barrier != nil {
				close(cmd.barrier)
				continue
			}
			q.execute(cmd)
		}
	}
}

// execute runs one command and records its failure for the next Flush
func (q *Queue) execute(cmd Command) {
	start := time.Now()
	if err := cmd.Fn(q.ctx); err != nil {
		slog.Error("Persist command failed", "name", cmd.Name, "error", err, "duration", time.Since(start))
		q.mu.Lock()
		q.failed = append(q.failed, fmt.Errorf("%s: %w", cmd.Name, err))
		q.mu.Unlock()
		return
	}
	slog.Debug("Persist command completed", "name", cmd.Name, "duration", time.Since(start))
}
