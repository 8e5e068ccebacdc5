package leave

import "context"

type LeaveService interface {
	// Licenses
	CreateLicense(ctx context.Context, req CreateLicenseRequest) (LicenseResponse, error)
	ApproveLicense(ctx context.Context, id string) (LicenseResponse, error)
	RejectLicense(ctx context.Context, id string) (LicenseResponse, error)
	DeleteLicense(ctx context.Context, id string) error
	ListLicenses(ctx context.Context, req ListLicensesRequest) ([]LicenseResponse, error)

	// Special permits
	CreatePermit(ctx context.Context, req CreatePermitRequest) (PermitResponse, error)
	DeletePermit(ctx context.Context, id string) error
	ListPermits(ctx context.Context, req ListPermitsRequest) ([]PermitResponse, error)
}
