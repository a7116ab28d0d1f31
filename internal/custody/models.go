// Package custody keeps the append-only chain-of-custody ledger. Entries are
// historical record: never mutated, never deleted. Corrections are new
// entries with action "accessed" and explanatory notes, by caller convention.
package custody

import (
	"time"

	"github.com/google/uuid"

	dErrors "exhibit/pkg/domain-errors"
)

// Action is what happened to the evidence at this point in its history.
type Action string

const (
	ActionReceived    Action = "received"
	ActionTransferred Action = "transferred"
	ActionStored      Action = "stored"
	ActionAccessed    Action = "accessed"
)

var validActions = map[Action]bool{
	ActionReceived:    true,
	ActionTransferred: true,
	ActionStored:      true,
	ActionAccessed:    true,
}

// IsValid checks the action against the closed set.
func (a Action) IsValid() bool {
	return validActions[a]
}

// Entry is one link in a document's custody chain.
type Entry struct {
	ID                 uuid.UUID `json:"id"`
	DocumentID         string    `json:"document_id"`
	Custodian          string    `json:"custodian"`
	Action             Action    `json:"action"`
	CustodyDate        time.Time `json:"custody_date"`
	Location           string    `json:"location,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	VerificationMethod string    `json:"verification_method,omitempty"`
}

// Validate enforces required-field presence. Custody is a historical record;
// there is nothing else to validate.
func (e *Entry) Validate() error {
	if e.DocumentID == "" {
		return dErrors.New(dErrors.CodeValidation, "document_id is required")
	}
	if e.Custodian == "" {
		return dErrors.New(dErrors.CodeValidation, "custodian is required")
	}
	if e.Action == "" {
		return dErrors.New(dErrors.CodeValidation, "action is required")
	}
	if !e.Action.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "action must be one of received, transferred, stored, accessed")
	}
	if e.CustodyDate.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "custody_date is required")
	}
	return nil
}
