package identity

import "context"

type AliasRepository interface {
	Create(ctx context.Context, mapping AliasMapping) (AliasMapping, error)

	// GetByNormalizedName returns nil when no mapping exists for the name.
	GetByNormalizedName(ctx context.Context, normalizedName string) (*AliasMapping, error)

	List(ctx context.Context) ([]AliasMapping, error)

	Delete(ctx context.Context, id string) error
}
