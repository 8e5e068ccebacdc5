package writeback

import (
	"context"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
)

type employeeRepository struct {
	employee.EmployeeRepository
	durable employee.EmployeeRepository
	queue   Enqueuer
}

func NewEmployeeRepository(mem, durable employee.EmployeeRepository, queue Enqueuer) employee.EmployeeRepository {
	return &employeeRepository{EmployeeRepository: mem, durable: durable, queue: queue}
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	created, err := r.EmployeeRepository.Create(ctx, newEmployee)
	if err != nil {
		return employee.Employee{}, err
	}
	return created, schedule(r.queue, "employee.create", func(ctx context.Context) error {
		_, err := r.durable.Create(ctx, created)
		return err
	})
}

func (r *employeeRepository) Update(ctx context.Context, updated employee.Employee) error {
	if err := r.EmployeeRepository.Update(ctx, updated); err != nil {
		return err
	}
	return schedule(r.queue, "employee.update", func(ctx context.Context) error {
		return r.durable.Update(ctx, updated)
	})
}
