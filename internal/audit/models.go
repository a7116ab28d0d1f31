// Package audit owns the immutable record of every admissibility decision.
// Records are created exactly once per check and never updated; the audit
// write is part of the decision contract, not an afterthought.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Status is the final outcome of an admissibility check.
type Status string

const (
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusInsufficient Status = "insufficient"
)

// FlagStatus is the outcome of a single evaluator run.
type FlagStatus string

const (
	FlagPass FlagStatus = "pass"
	FlagFail FlagStatus = "fail"
	FlagWarn FlagStatus = "warn"
)

// Flag is one evaluator's verdict, embedded in the request record.
type Flag struct {
	RuleCode string     `json:"rule_code"`
	RuleText string     `json:"rule_text"`
	Status   FlagStatus `json:"status"`
	Details  string     `json:"details,omitempty"`
}

// Request is the audit record of one admissibility check.
type Request struct {
	RequestID        uuid.UUID `json:"request_id"`
	DocumentID       string    `json:"document_id"`
	ClaimTypeID      string    `json:"claim_type_id,omitempty"`
	RequestorRef     string    `json:"requestor_ref,omitempty"`
	Status           Status    `json:"status"`
	ApprovalScope    string    `json:"approval_scope,omitempty"`
	RejectionReason  string    `json:"rejection_reason,omitempty"`
	MissingSources   []string  `json:"missing_sources"`
	ViolatedArticles []string  `json:"violated_articles"`
	Flags            []Flag    `json:"flags"`
	ReviewedAt       time.Time `json:"reviewed_at"`
}
