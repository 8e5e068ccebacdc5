package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound       = errors.New("attendance record not found")
	ErrEmptyImport          = errors.New("import contains no rows")
	ErrConfirmationRequired = errors.New("clearing attendance requires a confirmation token")
	ErrConfirmationInvalid  = errors.New("confirmation token is invalid or expired")
)
