package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type licenseRepositoryImpl struct {
	db *database.DB
}

func NewLicenseRepository(db *database.DB) leave.LicenseRepository {
	return &licenseRepositoryImpl{db: db}
}

const licenseColumns = `id, employee_id, type, start_date, end_date, days, status, notes, created_at, updated_at`

func scanLicense(row pgx.Row) (leave.License, error) {
	var l leave.License
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Days, &l.Status, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements leave.LicenseRepository.
func (r *licenseRepositoryImpl) Create(ctx context.Context, license leave.License) (leave.License, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO licenses (` + licenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.Exec(ctx, query,
		license.ID, license.EmployeeID, license.Type, license.StartDate, license.EndDate,
		license.Days, license.Status, license.Notes, license.CreatedAt, license.UpdatedAt,
	)
	if err != nil {
		return leave.License{}, fmt.Errorf("failed to create license: %w", err)
	}
	return license, nil
}

// GetByID implements leave.LicenseRepository.
func (r *licenseRepositoryImpl) GetByID(ctx context.Context, id string) (leave.License, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLicense(q.QueryRow(ctx, `SELECT `+licenseColumns+` FROM licenses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.License{}, leave.ErrLicenseNotFound
		}
		return leave.License{}, fmt.Errorf("failed to get license %s: %w", id, err)
	}
	return l, nil
}

// Update implements leave.LicenseRepository.
func (r *licenseRepositoryImpl) Update(ctx context.Context, license leave.License) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE licenses
		SET type = $2, start_date = $3, end_date = $4, days = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		license.ID, license.Type, license.StartDate, license.EndDate, license.Days,
		license.Status, license.Notes, license.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update license %s: %w", license.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLicenseNotFound
	}
	return nil
}

// Delete implements leave.LicenseRepository.
func (r *licenseRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM licenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete license %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLicenseNotFound
	}
	return nil
}

// List implements leave.LicenseRepository.
func (r *licenseRepositoryImpl) List(ctx context.Context, filter leave.LicenseFilter) ([]leave.License, error) {
	q := GetQuerier(ctx, r.db)

	where := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	// Overlap with the requested window
	if filter.From != nil {
		where += fmt.Sprintf(" AND end_date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND start_date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	rows, err := q.Query(ctx, `SELECT `+licenseColumns+` FROM licenses WHERE `+where+` ORDER BY start_date`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	defer rows.Close()

	licenses := make([]leave.License, 0)
	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan license: %w", err)
		}
		licenses = append(licenses, l)
	}
	return licenses, rows.Err()
}

type permitRepositoryImpl struct {
	db *database.DB
}

func NewPermitRepository(db *database.DB) leave.PermitRepository {
	return &permitRepositoryImpl{db: db}
}

// Create implements leave.PermitRepository.
func (r *permitRepositoryImpl) Create(ctx context.Context, permit leave.SpecialPermit) (leave.SpecialPermit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO special_permits (id, employee_id, date, from_time, to_time, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		permit.ID, permit.EmployeeID, permit.Date, permit.From, permit.To, permit.Reason, permit.CreatedAt,
	)
	if err != nil {
		return leave.SpecialPermit{}, fmt.Errorf("failed to create special permit: %w", err)
	}
	return permit, nil
}

// Delete implements leave.PermitRepository.
func (r *permitRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM special_permits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete special permit %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrPermitNotFound
	}
	return nil
}

// List implements leave.PermitRepository.
func (r *permitRepositoryImpl) List(ctx context.Context, filter leave.PermitFilter) ([]leave.SpecialPermit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, from_time, to_time, reason, created_at
		FROM special_permits
		WHERE ($1::text IS NULL OR employee_id = $1::text)
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		ORDER BY date, from_time
	`
	rows, err := q.Query(ctx, query, filter.EmployeeID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list special permits: %w", err)
	}
	defer rows.Close()

	permits := make([]leave.SpecialPermit, 0)
	for rows.Next() {
		var p leave.SpecialPermit
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Date, &p.From, &p.To, &p.Reason, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan special permit: %w", err)
		}
		permits = append(permits, p)
	}
	return permits, rows.Err()
}
