package custody

import "context"

// Store persists custody entries. Insert-only.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	// ListByDocument returns entries ordered by custody date ascending.
	ListByDocument(ctx context.Context, documentID string) ([]Entry, error)
	HasEntries(ctx context.Context, documentID string) (bool, error)
}
