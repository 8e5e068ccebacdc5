package timebank

import "context"

type EntryRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id string) (Entry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Entry, error)
}
