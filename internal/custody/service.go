package custody

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	dErrors "exhibit/pkg/domain-errors"
)

// Ledger is the append-only chain-of-custody service.
type Ledger struct {
	store  Store
	logger *slog.Logger
}

func NewLedger(store Store, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, logger: logger}
}

// AddEntry validates required fields, assigns an ID, and appends. Entries are
// never corrected in place.
func (l *Ledger) AddEntry(ctx context.Context, entry *Entry) (*Entry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	entry.ID = uuid.New()
	if err := l.store.Append(ctx, entry); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "custody store unreachable")
	}

	l.logger.InfoContext(ctx, "custody entry appended",
		"entry_id", entry.ID,
		"document_id", entry.DocumentID,
		"action", entry.Action,
	)
	return entry, nil
}

// GetChain returns the chain for a document ordered by custody date ascending.
func (l *Ledger) GetChain(ctx context.Context, documentID string) ([]Entry, error) {
	chain, err := l.store.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "custody store unreachable")
	}
	return chain, nil
}

// HasCustody answers "has custody been documented?" for a document.
func (l *Ledger) HasCustody(ctx context.Context, documentID string) (bool, error) {
	documented, err := l.store.HasEntries(ctx, documentID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "custody store unreachable")
	}
	return documented, nil
}
