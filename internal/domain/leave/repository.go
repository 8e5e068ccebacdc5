package leave

import "context"

// LicenseRepository - interface for licenses table
type LicenseRepository interface {
	Create(ctx context.Context, license License) (License, error)
	GetByID(ctx context.Context, id string) (License, error)
	Update(ctx context.Context, license License) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter LicenseFilter) ([]License, error)
}

// PermitRepository - interface for special_permits table
type PermitRepository interface {
	Create(ctx context.Context, permit SpecialPermit) (SpecialPermit, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PermitFilter) ([]SpecialPermit, error)
}
