package writeback

import (
	"context"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
)

type attendanceRepository struct {
	attendance.AttendanceRepository
	durable attendance.AttendanceRepository
	queue   Enqueuer
}

func NewAttendanceRepository(mem, durable attendance.AttendanceRepository, queue Enqueuer) attendance.AttendanceRepository {
	return &attendanceRepository{AttendanceRepository: mem, durable: durable, queue: queue}
}

func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) (bool, error) {
	replaced, err := r.AttendanceRepository.Upsert(ctx, record)
	if err != nil {
		return false, err
	}
	return replaced, schedule(r.queue, "attendance.upsert", func(ctx context.Context) error {
		_, err := r.durable.Upsert(ctx, record)
		return err
	})
}

func (r *attendanceRepository) Delete(ctx context.Context, key string) error {
	if err := r.AttendanceRepository.Delete(ctx, key); err != nil {
		return err
	}
	return schedule(r.queue, "attendance.delete", func(ctx context.Context) error {
		return r.durable.Delete(ctx, key)
	})
}

func (r *attendanceRepository) DeleteAll(ctx context.Context) (int, error) {
	n, err := r.AttendanceRepository.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	return n, schedule(r.queue, "attendance.delete_all", func(ctx context.Context) error {
		_, err := r.durable.DeleteAll(ctx)
		return err
	})
}
