package document

import "context"

// Reader is the port through which the gatekeeper fetches document metadata.
// Returns (nil, nil) when the document does not exist; a missing document is
// a business outcome, not an error.
type Reader interface {
	GetDocument(ctx context.Context, documentID string) (*Document, error)
}
