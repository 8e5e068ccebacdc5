package timebank

import "errors"

var (
	ErrEntryNotFound     = errors.New("time bank entry not found")
	ErrEntryTypeMismatch = errors.New("entry type does not match the sign of its hours")
)
