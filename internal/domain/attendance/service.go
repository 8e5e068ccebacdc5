package attendance

import (
	"context"
)

// AttendanceService defines ingestion and record administration
type AttendanceService interface {
	// Import turns spreadsheet rows into records, replacing records with the same key
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)

	// AddManualEntry stores an operator supplied punch pair under the manual branch
	AddManualEntry(ctx context.Context, req ManualEntryRequest) (RecordResponse, error)

	ListRecords(ctx context.Context, req ListRecordsRequest) ([]RecordResponse, error)

	DeleteRecord(ctx context.Context, key string) error

	// RequestClear issues the confirmation token that ClearAll requires
	RequestClear(ctx context.Context) (ClearConfirmation, error)

	// ClearAll wipes every record. Irreversible.
	ClearAll(ctx context.Context, req ClearRequest) (ClearResult, error)
}
