package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type aliasRepositoryImpl struct {
	db *database.DB
}

func NewAliasRepository(db *database.DB) identity.AliasRepository {
	return &aliasRepositoryImpl{db: db}
}

// Create implements identity.AliasRepository.
func (a *aliasRepositoryImpl) Create(ctx context.Context, mapping identity.AliasMapping) (identity.AliasMapping, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO alias_mappings (id, raw_name, normalized_name, employee_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, mapping.ID, mapping.RawName, mapping.NormalizedName, mapping.EmployeeID, mapping.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return identity.AliasMapping{}, identity.ErrAliasExists
		}
		return identity.AliasMapping{}, fmt.Errorf("failed to create alias mapping: %w", err)
	}
	return mapping, nil
}

// GetByNormalizedName implements identity.AliasRepository.
func (a *aliasRepositoryImpl) GetByNormalizedName(ctx context.Context, normalizedName string) (*identity.AliasMapping, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, raw_name, normalized_name, employee_id, created_at
		FROM alias_mappings
		WHERE normalized_name = $1
	`
	var m identity.AliasMapping
	err := q.QueryRow(ctx, query, normalizedName).Scan(&m.ID, &m.RawName, &m.NormalizedName, &m.EmployeeID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alias mapping: %w", err)
	}
	return &m, nil
}

// List implements identity.AliasRepository.
func (a *aliasRepositoryImpl) List(ctx context.Context) ([]identity.AliasMapping, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, raw_name, normalized_name, employee_id, created_at
		FROM alias_mappings
		ORDER BY normalized_name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alias mappings: %w", err)
	}
	defer rows.Close()

	mappings := make([]identity.AliasMapping, 0)
	for rows.Next() {
		var m identity.AliasMapping
		if err := rows.Scan(&m.ID, &m.RawName, &m.NormalizedName, &m.EmployeeID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alias mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// Delete implements identity.AliasRepository.
func (a *aliasRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM alias_mappings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete alias mapping %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrAliasNotFound
	}
	return nil
}
