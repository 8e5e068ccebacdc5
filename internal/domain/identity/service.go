package identity

import "context"

// IdentityService administers aliases and virtual identities
type IdentityService interface {
	CreateAlias(ctx context.Context, req CreateAliasRequest) (AliasResponse, error)
	ListAliases(ctx context.Context) ([]AliasResponse, error)

	// DeleteAlias removes the mapping; records already resolved through it keep their identity
	DeleteAlias(ctx context.Context, id string) error

	ListVirtualIdentities(ctx context.Context) ([]VirtualIdentityResponse, error)

	// Relink moves every record of a virtual identity to a real employee and remembers the alias
	Relink(ctx context.Context, req RelinkRequest) (RelinkResult, error)
}
