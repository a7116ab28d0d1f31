// Package claims holds the claim-type catalog and the analyzer that matches
// a document's linked sources against a claim type's source requirements.
package claims

// ClaimType is a category of legal assertion with evidentiary requirements.
type ClaimType struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// SourceRequirement states that a claim type needs a particular kind of
// supporting source.
type SourceRequirement struct {
	ClaimTypeID               string `json:"claim_type_id" yaml:"claim_type_id"`
	SourceCategory            string `json:"source_category" yaml:"source_category"`
	SourceDescription         string `json:"source_description" yaml:"source_description"`
	AuthenticationRequirement string `json:"authentication_requirement" yaml:"authentication_requirement"`
	IsRequired                bool   `json:"is_required" yaml:"is_required"`
}

// AnalysisStatus grades how well a document supports a claim.
type AnalysisStatus string

const (
	// StatusSupported: every required element matched and at least one
	// element matched overall.
	StatusSupported AnalysisStatus = "supported"
	// StatusInsufficient: at least one required element is unmatched.
	StatusInsufficient AnalysisStatus = "insufficient"
	// StatusProvisional: nothing required is missing but support is partial.
	StatusProvisional AnalysisStatus = "provisional"
)

// Analysis is the confidence-scored support result for one (document, claim
// type) pair. Upserted: repeated analysis overwrites, it does not accumulate
// history.
type Analysis struct {
	DocumentID          string         `json:"document_id"`
	ClaimTypeID         string         `json:"claim_type_id"`
	ClaimText           string         `json:"claim_text"`
	SupportedElements   []string       `json:"supported_elements"`
	UnsupportedElements []string       `json:"unsupported_elements"`
	Confidence          float64        `json:"confidence"`
	Status              AnalysisStatus `json:"status"`
}
