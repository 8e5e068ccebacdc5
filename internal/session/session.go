// Package session holds the working set every service reads and mutates.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/sales"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/persist"
	"github.com/cmlabs-hris/timekeeping-go/internal/repository/memory"
	"github.com/cmlabs-hris/timekeeping-go/internal/repository/writeback"
	"golang.org/x/sync/errgroup"
)

// Repositories groups one repository per aggregate.
type Repositories struct {
	Employees  employee.EmployeeRepository
	Aliases    identity.AliasRepository
	Attendance attendance.AttendanceRepository
	Holidays   holiday.HolidayRepository
	Licenses   leave.LicenseRepository
	Permits    leave.PermitRepository
	TimeBank   timebank.EntryRepository
	Sales      sales.SalesRepository
}

// Session is an explicit store: an in-memory snapshot plus the queue that
// carries its mutations to the durable store.
type Session struct {
	Repositories
	queue *persist.Queue
}

// Open loads a snapshot of durable into memory and returns a session whose
// repositories write back to it. A nil durable gives a memory-only session.
func Open(ctx context.Context, durable *Repositories, queueSize int) (*Session, error) {
	mem := Repositories{
		Employees:  memory.NewEmployeeRepository(),
		Aliases:    memory.NewAliasRepository(),
		Attendance: memory.NewAttendanceRepository(),
		Holidays:   memory.NewHolidayRepository(),
		Licenses:   memory.NewLicenseRepository(),
		Permits:    memory.NewPermitRepository(),
		TimeBank:   memory.NewEntryRepository(),
		Sales:      memory.NewSalesRepository(),
	}
	if durable == nil {
		slog.Info("Session opened without durable store")
		return &Session{Repositories: mem}, nil
	}

	start := time.Now()
	if err := load(ctx, durable, mem); err != nil {
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}

	queue := persist.NewQueue(queueSize)
	queue.Start()

	s := &Session{
		Repositories: Repositories{
			Employees:  writeback.NewEmployeeRepository(mem.Employees, durable.Employees, queue),
			Aliases:    writeback.NewAliasRepository(mem.Aliases, durable.Aliases, queue),
			Attendance: writeback.NewAttendanceRepository(mem.Attendance, durable.Attendance, queue),
			Holidays:   writeback.NewHolidayRepository(mem.Holidays, durable.Holidays, queue),
			Licenses:   writeback.NewLicenseRepository(mem.Licenses, durable.Licenses, queue),
			Permits:    writeback.NewPermitRepository(mem.Permits, durable.Permits, queue),
			TimeBank:   writeback.NewEntryRepository(mem.TimeBank, durable.TimeBank, queue),
			// Sales belong to another subsystem and are read through.
			Sales: durable.Sales,
		},
		queue: queue,
	}
	slog.Info("Session opened", "elapsed", time.Since(start).String())
	return s, nil
}

// Flush waits until every queued write has reached the durable store and
// reports the writes that failed since the previous flush.
func (s *Session) Flush(ctx context.Context) error {
	if s.queue == nil {
		return nil
	}
	return s.queue.Flush(ctx)
}

// Close flushes pending writes and stops the persist worker.
func (s *Session) Close(ctx context.Context) error {
	if s.queue == nil {
		return nil
	}
	return s.queue.Stop(ctx)
}

func load(ctx context.Context, durable *Repositories, mem Repositories) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		employees, err := durable.Employees.List(gCtx)
		if err != nil {
			return err
		}
		for _, e := range employees {
			if _, err := mem.Employees.Create(gCtx, e); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		aliases, err := durable.Aliases.List(gCtx)
		if err != nil {
			return err
		}
		for _, a := range aliases {
			if _, err := mem.Aliases.Create(gCtx, a); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		records, err := durable.Attendance.List(gCtx, attendance.Filter{})
		if err != nil {
			return err
		}
		for _, r := range records {
			if _, err := mem.Attendance.Upsert(gCtx, r); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		holidays, err := durable.Holidays.List(gCtx, nil, nil)
		if err != nil {
			return err
		}
		for _, h := range holidays {
			if _, err := mem.Holidays.Create(gCtx, h); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		licenses, err := durable.Licenses.List(gCtx, leave.LicenseFilter{})
		if err != nil {
			return err
		}
		for _, l := range licenses {
			if _, err := mem.Licenses.Create(gCtx, l); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		permits, err := durable.Permits.List(gCtx, leave.PermitFilter{})
		if err != nil {
			return err
		}
		for _, p := range permits {
			if _, err := mem.Permits.Create(gCtx, p); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		entries, err := durable.TimeBank.List(gCtx, timebank.Filter{})
		if err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := mem.TimeBank.Create(gCtx, e); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}
