package leave

import "errors"

var (
	ErrLicenseNotFound         = errors.New("license not found")
	ErrLicenseAlreadyProcessed = errors.New("license already approved or rejected")
	ErrPermitNotFound          = errors.New("special permit not found")
)
