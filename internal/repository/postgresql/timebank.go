package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type entryRepositoryImpl struct {
	db *database.DB
}

func NewEntryRepository(db *database.DB) timebank.EntryRepository {
	return &entryRepositoryImpl{db: db}
}

// Create implements timebank.EntryRepository.
func (r *entryRepositoryImpl) Create(ctx context.Context, entry timebank.Entry) (timebank.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_bank_entries (id, employee_id, date, hours, type, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		entry.ID, entry.EmployeeID, entry.Date, entry.Hours, entry.Type, entry.Reason, entry.CreatedAt,
	)
	if err != nil {
		return timebank.Entry{}, fmt.Errorf("failed to create time bank entry: %w", err)
	}
	return entry, nil
}

// GetByID implements timebank.EntryRepository.
func (r *entryRepositoryImpl) GetByID(ctx context.Context, id string) (timebank.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, hours, type, reason, created_at
		FROM time_bank_entries
		WHERE id = $1
	`
	var e timebank.Entry
	err := q.QueryRow(ctx, query, id).Scan(&e.ID, &e.EmployeeID, &e.Date, &e.Hours, &e.Type, &e.Reason, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timebank.Entry{}, timebank.ErrEntryNotFound
		}
		return timebank.Entry{}, fmt.Errorf("failed to get time bank entry %s: %w", id, err)
	}
	return e, nil
}

// Delete implements timebank.EntryRepository.
func (r *entryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_bank_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time bank entry %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return timebank.ErrEntryNotFound
	}
	return nil
}

// List implements timebank.EntryRepository.
func (r *entryRepositoryImpl) List(ctx context.Context, filter timebank.Filter) ([]timebank.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, hours, type, reason, created_at
		FROM time_bank_entries
		WHERE ($1::text IS NULL OR employee_id = $1::text)
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		ORDER BY date, created_at
	`
	rows, err := q.Query(ctx, query, filter.EmployeeID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list time bank entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timebank.Entry, 0)
	for rows.Next() {
		var e timebank.Entry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Date, &e.Hours, &e.Type, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan time bank entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
