// Package facts keeps the append-only statement-of-facts ledger with
// insertion-time conflict detection.
package facts

import (
	"time"

	"github.com/google/uuid"

	dErrors "exhibit/pkg/domain-errors"
)

// StatementOfFact is a discrete, numbered factual assertion tied to a case
// and an exhibit. Append-only; HasConflict is computed once at insertion and
// never revisited when later facts arrive.
type StatementOfFact struct {
	ID                 uuid.UUID  `json:"id"`
	CaseID             string     `json:"case_id,omitempty"`
	FactNumber         int        `json:"fact_number"`
	FactDate           *time.Time `json:"fact_date,omitempty"`
	FactText           string     `json:"fact_text"`
	ExhibitReference   string     `json:"exhibit_reference"`
	DocumentID         string     `json:"document_id,omitempty"`
	SourceQuote        string     `json:"source_quote,omitempty"`
	HasConflict        bool       `json:"has_conflict"`
	ConflictWithFactID *uuid.UUID `json:"conflict_with_fact_id,omitempty"`
}

// Validate enforces required-field presence.
func (f *StatementOfFact) Validate() error {
	if f.FactText == "" {
		return dErrors.New(dErrors.CodeValidation, "fact_text is required")
	}
	if f.ExhibitReference == "" {
		return dErrors.New(dErrors.CodeValidation, "exhibit_reference is required")
	}
	return nil
}

// Conflict pairs a fact with the earlier fact it contradicts.
type Conflict struct {
	FactID             uuid.UUID `json:"fact_id"`
	ConflictWithFactID uuid.UUID `json:"conflict_with_fact_id"`
}

// Statement is a case's ordered fact list plus its derived conflicts.
type Statement struct {
	CaseID    string            `json:"case_id"`
	Facts     []StatementOfFact `json:"facts"`
	Conflicts []Conflict        `json:"conflicts"`
}
