package facts

import (
	"context"
	"time"
)

// Store persists statements of fact. Insert-only; stored facts are never
// updated, including their conflict flags.
type Store interface {
	Append(ctx context.Context, fact *StatementOfFact) error
	// ListByCase returns facts ordered by fact number ascending.
	ListByCase(ctx context.Context, caseID string) ([]StatementOfFact, error)
	// ListByCaseAndDate returns committed facts sharing the case and calendar
	// date, for conflict comparison.
	ListByCaseAndDate(ctx context.Context, caseID string, date time.Time) ([]StatementOfFact, error)
	NextFactNumber(ctx context.Context, caseID string) (int, error)
}
