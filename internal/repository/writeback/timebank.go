package writeback

import (
	"context"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/timebank"
)

type entryRepository struct {
	timebank.EntryRepository
	durable timebank.EntryRepository
	queue   Enqueuer
}

func NewEntryRepository(mem, durable timebank.EntryRepository, queue Enqueuer) timebank.EntryRepository {
	return &entryRepository{EntryRepository: mem, durable: durable, queue: queue}
}

func (r *entryRepository) Create(ctx context.Context, entry timebank.Entry) (timebank.Entry, error) {
	created, err := r.EntryRepository.Create(ctx, entry)
	if err != nil {
		return timebank.Entry{}, err
	}
	return created, schedule(r.queue, "timebank.create", func(ctx context.Context) error {
		_, err := r.durable.Create(ctx, created)
		return err
	})
}

func (r *entryRepository) Delete(ctx context.Context, id string) error {
	if err := r.EntryRepository.Delete(ctx, id); err != nil {
		return err
	}
	return schedule(r.queue, "timebank.delete", func(ctx context.Context) error {
		return r.durable.Delete(ctx, id)
	})
}
