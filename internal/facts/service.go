package facts

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"exhibit/internal/facts/metrics"
	dErrors "exhibit/pkg/domain-errors"
)

// Ledger is the append-only statement-of-facts service.
type Ledger struct {
	store    Store
	detector ConflictDetector
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewLedger(store Store, detector ConflictDetector, logger *slog.Logger, metrics *metrics.Metrics) *Ledger {
	return &Ledger{
		store:    store,
		detector: detector,
		logger:   logger,
		metrics:  metrics,
	}
}

// AddFact assigns an ID and fact number, runs conflict detection against
// committed facts sharing the case and date, and appends. Earlier facts are
// never retroactively updated: only the new entry carries the conflict flag.
//
// Two facts inserted concurrently for the same case and date may each miss
// the other during detection. The check reads committed facts only; this
// race is a documented limitation of the advisory heuristic, not a bug to
// serialize away.
func (l *Ledger) AddFact(ctx context.Context, fact *StatementOfFact) (*StatementOfFact, error) {
	if err := fact.Validate(); err != nil {
		return nil, err
	}

	fact.ID = uuid.New()
	fact.HasConflict = false
	fact.ConflictWithFactID = nil

	if fact.FactNumber == 0 {
		next, err := l.store.NextFactNumber(ctx, fact.CaseID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "fact store unreachable")
		}
		fact.FactNumber = next
	}

	if fact.CaseID != "" && fact.FactDate != nil {
		existing, err := l.store.ListByCaseAndDate(ctx, fact.CaseID, *fact.FactDate)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "fact store unreachable")
		}
		for _, prior := range existing {
			if l.detector.Conflicts(fact.FactText, prior.FactText) {
				conflictID := prior.ID
				fact.HasConflict = true
				fact.ConflictWithFactID = &conflictID
				break
			}
		}
	}

	if err := l.store.Append(ctx, fact); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "fact store unreachable")
	}

	l.metrics.IncrementFactsRecorded()
	if fact.HasConflict {
		l.metrics.IncrementConflictsDetected()
		l.logger.WarnContext(ctx, "fact conflict detected",
			"fact_id", fact.ID,
			"case_id", fact.CaseID,
			"conflict_with", fact.ConflictWithFactID,
		)
	}
	return fact, nil
}

// GetStatementOfFacts returns a case's facts ordered by fact number plus the
// derived conflict list.
func (l *Ledger) GetStatementOfFacts(ctx context.Context, caseID string) (*Statement, error) {
	list, err := l.store.ListByCase(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "fact store unreachable")
	}

	statement := &Statement{
		CaseID:    caseID,
		Facts:     list,
		Conflicts: []Conflict{},
	}
	for _, f := range list {
		if f.HasConflict && f.ConflictWithFactID != nil {
			statement.Conflicts = append(statement.Conflicts, Conflict{
				FactID:             f.ID,
				ConflictWithFactID: *f.ConflictWithFactID,
			})
		}
	}
	return statement, nil
}
