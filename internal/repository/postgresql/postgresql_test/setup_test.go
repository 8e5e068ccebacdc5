package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/database"
	"github.com/cmlabs-hris/timekeeping-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// tables lists every table owned by the service, children first.
var tables = []string{
	"attendance_records",
	"alias_mappings",
	"licenses",
	"special_permits",
	"time_bank_entries",
	"holidays",
	"sales",
	"employees",
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	if err := TruncateAllTables(ctx, db); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return db
}

// TruncateAllTables empties every table in one transaction.
func TruncateAllTables(ctx context.Context, db *database.DB) error {
	return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		for _, table := range tables {
			if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}
