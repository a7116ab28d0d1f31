package audit

import "context"

// Store persists admissibility request records. Append-only.
type Store interface {
	Append(ctx context.Context, record *Request) error
	// ListByDocument returns records for a document, most recent first.
	ListByDocument(ctx context.Context, documentID string) ([]Request, error)
	// ListRecent returns the N most recent records across all documents.
	ListRecent(ctx context.Context, limit int) ([]Request, error)
}
