// Package sourceauth classifies document source types against the
// approved-source catalog.
package sourceauth

// Category grades a source type's evidentiary authority.
type Category string

const (
	CategoryPrimary   Category = "primary"
	CategorySecondary Category = "secondary"
	CategoryExcluded  Category = "excluded"
	// CategoryUnknown marks a source type not yet cataloged. Suspicious but
	// not automatically disqualifying.
	CategoryUnknown Category = "unknown"
)

// ApprovedSource is one catalog entry.
type ApprovedSource struct {
	SourceType          string   `json:"source_type" yaml:"source_type"`
	Category            Category `json:"category" yaml:"category"`
	Description         string   `json:"description" yaml:"description"`
	AuthenticationRules string   `json:"authentication_rules" yaml:"authentication_rules"`
}
