package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `key, employee_id, raw_name, date, branch, entrance_1, exit_1, entrance_2, exit_2,
	status, source, source_name, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.Key, &r.EmployeeID, &r.RawName, &r.Date, &r.Branch,
		&r.Entrance1, &r.Exit1, &r.Entrance2, &r.Exit2,
		&r.Status, &r.Source, &r.SourceName, &r.UpdatedAt,
	)
	return r, err
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) (bool, error) {
	q := GetQuerier(ctx, a.db)

	// xmax is non-zero when the row existed and was rewritten by ON CONFLICT.
	query := `
		INSERT INTO attendance_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (key) DO UPDATE SET
			employee_id = EXCLUDED.employee_id,
			raw_name = EXCLUDED.raw_name,
			date = EXCLUDED.date,
			branch = EXCLUDED.branch,
			entrance_1 = EXCLUDED.entrance_1,
			exit_1 = EXCLUDED.exit_1,
			entrance_2 = EXCLUDED.entrance_2,
			exit_2 = EXCLUDED.exit_2,
			status = EXCLUDED.status,
			source = EXCLUDED.source,
			source_name = EXCLUDED.source_name,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax <> 0)
	`
	var replaced bool
	err := q.QueryRow(ctx, query,
		record.Key, record.EmployeeID, record.RawName, record.Date, record.Branch,
		record.Entrance1, record.Exit1, record.Entrance2, record.Exit2,
		record.Status, record.Source, record.SourceName, record.UpdatedAt,
	).Scan(&replaced)
	if err != nil {
		return false, fmt.Errorf("failed to upsert attendance record %s: %w", record.Key, err)
	}
	return replaced, nil
}

// GetByKey implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByKey(ctx context.Context, key string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE key = $1`
	r, err := scanRecord(q.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record %s: %w", key, err)
	}
	return &r, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	where := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Branch != nil {
		where += fmt.Sprintf(" AND branch = $%d", argIdx)
		args = append(args, *filter.Branch)
		argIdx++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE ` + where + ` ORDER BY date, key`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, key string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// DeleteAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteAll(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear attendance records: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
