package writeback

import (
	"context"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/holiday"
)

type holidayRepository struct {
	holiday.HolidayRepository
	durable holiday.HolidayRepository
	queue   Enqueuer
}

func NewHolidayRepository(mem, durable holiday.HolidayRepository, queue Enqueuer) holiday.HolidayRepository {
	return &holidayRepository{HolidayRepository: mem, durable: durable, queue: queue}
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	created, err := r.HolidayRepository.Create(ctx, h)
	if err != nil {
		return holiday.Holiday{}, err
	}
	return created, schedule(r.queue, "holiday.create", func(ctx context.Context) error {
		_, err := r.durable.Create(ctx, created)
		return err
	})
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	if err := r.HolidayRepository.Delete(ctx, id); err != nil {
		return err
	}
	return schedule(r.queue, "holiday.delete", func(ctx context.Context) error {
		return r.durable.Delete(ctx, id)
	})
}
