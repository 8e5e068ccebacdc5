package timebank

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type TimeBankServiceImpl struct {
	timebank.EntryRepository
	employee.EmployeeRepository
}

func NewTimeBankService(entries timebank.EntryRepository, employees employee.EmployeeRepository) timebank.TimeBankService {
	return &TimeBankServiceImpl{EntryRepository: entries, EmployeeRepository: employees}
}

// AppendEntry implements timebank.TimeBankService.
func (s *TimeBankServiceImpl) AppendEntry(ctx context.Context, req timebank.AppendEntryRequest) (timebank.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timebank.EntryResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return timebank.EntryResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return timebank.EntryResponse{}, fmt.Errorf("failed to generate entry id: %w", err)
	}
	date, _ := time.Parse(utils.DateLayout, req.Date)
	entryType := timebank.EntryType(req.Type)

	entry := timebank.Entry{
		ID:         id.String(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Hours:      timebank.SignedHours(entryType, req.Hours),
		Type:       entryType,
		Reason:     req.Reason,
		CreatedAt:  time.Now().UTC(),
	}
	if !entry.Consistent() {
		return timebank.EntryResponse{}, timebank.ErrEntryTypeMismatch
	}

	created, err := s.EntryRepository.Create(ctx, entry)
	if err != nil {
		return timebank.EntryResponse{}, fmt.Errorf("failed to append time bank entry: %w", err)
	}
	return timebank.ToEntryResponse(created), nil
}

// DeleteEntry implements timebank.TimeBankService.
func (s *TimeBankServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	return s.EntryRepository.Delete(ctx, id)
}

// ListEntries implements timebank.TimeBankService.
func (s *TimeBankServiceImpl) ListEntries(ctx context.Context, req timebank.ListEntriesRequest) ([]timebank.EntryResponse, error) {
	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	entries, err := s.EntryRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list time bank entries: %w", err)
	}

	responses := make([]timebank.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timebank.ToEntryResponse(e))
	}
	return responses, nil
}

// Balance implements timebank.TimeBankService.
func (s *TimeBankServiceImpl) Balance(ctx context.Context, req timebank.ListEntriesRequest) (timebank.BalanceResponse, error) {
	if req.EmployeeID == nil || validator.IsEmpty(*req.EmployeeID) {
		return timebank.BalanceResponse{}, validator.ValidationErrors{
			{Field: "employee_id", Message: "employee_id is required"},
		}
	}
	filter, err := req.ToFilter()
	if err != nil {
		return timebank.BalanceResponse{}, err
	}

	entries, err := s.EntryRepository.List(ctx, filter)
	if err != nil {
		return timebank.BalanceResponse{}, fmt.Errorf("failed to list time bank entries: %w", err)
	}

	resp := timebank.BalanceResponse{
		EmployeeID: *req.EmployeeID,
		Balance:    timebank.Balance(entries),
		Entries:    len(entries),
	}
	for _, e := range entries {
		if e.Hours < 0 {
			resp.Debt += -e.Hours
		} else {
			resp.Credit += e.Hours
		}
	}
	return resp, nil
}
