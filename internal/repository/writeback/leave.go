package writeback

import (
	"context"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
)

type licenseRepository struct {
	leave.LicenseRepository
	durable leave.LicenseRepository
	queue   Enqueuer
}

func NewLicenseRepository(mem, durable leave.LicenseRepository, queue Enqueuer) leave.LicenseRepository {
	return &licenseRepository{LicenseRepository: mem, durable: durable, queue: queue}
}

func (r *licenseRepository) Create(ctx context.Context, license leave.License) (leave.License, error) {
	created, err := r.LicenseRepository.Create(ctx, license)
	if err != nil {
		return leave.License{}, err
	}
	return created, schedule(r.queue, "license.create", func(ctx context.Context) error {
		_, err := r.durable.Create(ctx, created)
		return err
	})
}

func (r *licenseRepository) Update(ctx context.Context, license leave.License) error {
	if err := r.LicenseRepository.Update(ctx, license); err != nil {
		return err
	}
	return schedule(r.queue, "license.update", func(ctx context.Context) error {
		return r.durable.Update(ctx, license)
	})
}

func (r *licenseRepository) Delete(ctx context.Context, id string) error {
	if err := r.LicenseRepository.Delete(ctx, id); err != nil {
		return err
	}
	return schedule(r.queue, "license.delete", func(ctx context.Context) error {
		return r.durable.Delete(ctx, id)
	})
}

type permitRepository struct {
	leave.PermitRepository
	durable leave.PermitRepository
	queue   Enqueuer
}

func NewPermitRepository(mem, durable leave.PermitRepository, queue Enqueuer) leave.PermitRepository {
	return &permitRepository{PermitRepository: mem, durable: durable, queue: queue}
}

func (r *permitRepository) Create(ctx context.Context, permit leave.SpecialPermit) (leave.SpecialPermit, error) {
	created, err := r.PermitRepository.Create(ctx, permit)
	if err != nil {
		return leave.SpecialPermit{}, err
	}
	return created, schedule(r.queue, "permit.create", func(ctx context.Context) error {
		_, err := r.durable.Create(ctx, created)
		return err
	})
}

func (r *permitRepository) Delete(ctx context.Context, id string) error {
	if err := r.PermitRepository.Delete(ctx, id); err != nil {
		return err
	}
	return schedule(r.queue, "permit.delete", func(ctx context.Context) error {
		return r.durable.Delete(ctx, id)
	})
}
