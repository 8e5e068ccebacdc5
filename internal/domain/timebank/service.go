package timebank

import "context"

type TimeBankService interface {
	AppendEntry(ctx context.Context, req AppendEntryRequest) (EntryResponse, error)
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, req ListEntriesRequest) ([]EntryResponse, error)
	// Balance sums the entries of one employee within the optional window
	Balance(ctx context.Context, req ListEntriesRequest) (BalanceResponse, error)
}
