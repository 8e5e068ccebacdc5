package report

import "errors"

var (
	ErrInvalidRange      = errors.New("end date must not be before start date")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrRangeTooLarge     = errors.New("date range exceeds the maximum report window")
)
