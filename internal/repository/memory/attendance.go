package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
)

type attendanceRepository struct {
	mu      sync.RWMutex
	records map[string]attendance.Record
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{records: make(map[string]attendance.Record)}
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, replaced := r.records[record.Key]
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}
	r.records[record.Key] = record
	return replaced, nil
}

// GetByKey implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByKey(ctx context.Context, key string) (*attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]attendance.Record, 0)
	for _, rec := range r.records {
		if filter.Matches(rec) {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Key < result[j].Key
	})
	return result, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[key]; !ok {
		return attendance.ErrRecordNotFound
	}
	delete(r.records, key)
	return nil
}

// DeleteAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) DeleteAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.records)
	r.records = make(map[string]attendance.Record)
	return n, nil
}
