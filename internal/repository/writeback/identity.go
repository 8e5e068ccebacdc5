package writeback

import (
	"context"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
)

type aliasRepository struct {
	identity.AliasRepository
	durable identity.AliasRepository
	queue   Enqueuer
}

func NewAliasRepository(mem, durable identity.AliasRepository, queue Enqueuer) identity.AliasRepository {
	return &aliasRepository{AliasRepository: mem, durable: durable, queue: queue}
}

func (r *aliasRepository) Create(ctx context.Context, mapping identity.AliasMapping) (identity.AliasMapping, error) {
	created, err := r.AliasRepository.Create(ctx, mapping)
	if err != nil {
		return identity.AliasMapping{}, err
	}
	return created, schedule(r.queue, "alias.create", func(ctx context.Context) error {
		_, err := r.durable.Create(ctx, created)
		return err
	})
}

func (r *aliasRepository) Delete(ctx context.Context, id string) error {
	if err := r.AliasRepository.Delete(ctx, id); err != nil {
		return err
	}
	return schedule(r.queue, "alias.delete", func(ctx context.Context) error {
		return r.durable.Delete(ctx, id)
	})
}
