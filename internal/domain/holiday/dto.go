package holiday

import (
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Label string `json:"label"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{
			Field:   "label",
			Message: "label is required",
		})
	}
	if len(r.Label) > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "label",
			Message: "label must not exceed 200 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Label string `json:"label"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{ID: h.ID, Date: utils.FormatDate(h.Date), Label: h.Label}
}
