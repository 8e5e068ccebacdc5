package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/google/uuid"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(holidays holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{HolidayRepository: holidays}
}

// CreateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}
	date, _ := time.Parse(utils.DateLayout, req.Date)

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		ID:        id.String(),
		Date:      date,
		Label:     req.Label,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.ToResponse(created), nil
}

// DeleteHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return s.HolidayRepository.Delete(ctx, id)
}

// ListHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, year *int) ([]holiday.HolidayResponse, error) {
	var from, to *time.Time
	if year != nil {
		start := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(*year, time.December, 31, 0, 0, 0, 0, time.UTC)
		from, to = &start, &end
	}

	holidays, err := s.HolidayRepository.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.ToResponse(h))
	}
	return responses, nil
}
