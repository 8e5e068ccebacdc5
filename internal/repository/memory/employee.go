package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
)

type employeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepository{employees: make(map[string]employee.Employee)}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[newEmployee.ID]; ok {
		return employee.Employee{}, employee.ErrEmployeeExists
	}
	now := time.Now().UTC()
	if newEmployee.CreatedAt.IsZero() {
		newEmployee.CreatedAt = now
	}
	if newEmployee.UpdatedAt.IsZero() {
		newEmployee.UpdatedAt = now
	}
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, updated employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[updated.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.employees[updated.ID] = updated
	return nil
}
