// Package rules holds the admissibility rule table and the constitution
// articles cited in violation reasons. Both are administered out-of-band;
// request handling only ever reads them.
package rules

// FailureAction says what a failing rule does to the final decision.
type FailureAction string

const (
	// FailureReject makes a failing flag reject the document.
	FailureReject FailureAction = "reject"
	// FailureWarn records a failing flag without affecting the decision.
	FailureWarn FailureAction = "warn"
)

// Well-known rule codes. The evaluator registry dispatches on these;
// unrecognized codes evaluate to pass so rules can be added administratively
// before code catches up.
const (
	CodeNativeFormat       = "NATIVE_FORMAT"
	CodeIntactMetadata     = "INTACT_METADATA"
	CodeNoScreenshots      = "NO_SCREENSHOTS"
	CodeNoSummaries        = "NO_SUMMARIES"
	CodeProvenanceRequired = "PROVENANCE_REQUIRED"
	CodeChainOfCustody     = "CHAIN_OF_CUSTODY"
	CodeSourceAuthority    = "SOURCE_AUTHORITY"
)

// AdmissibilityRule is one row of the rule table. Immutable per version.
type AdmissibilityRule struct {
	Code          string        `json:"code" yaml:"code"`
	Text          string        `json:"text" yaml:"text"`
	FailureAction FailureAction `json:"failure_action" yaml:"failure_action"`
	Active        bool          `json:"active" yaml:"active"`
}

// ConstitutionArticle is a human-readable policy clause cited when a rule is
// violated. Association with rule codes is by convention, not a foreign key.
type ConstitutionArticle struct {
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`
	Text   string `json:"text" yaml:"text"`
	Active bool   `json:"active" yaml:"active"`
}
