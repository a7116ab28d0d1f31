package admissibility

import (
	"fmt"
	"regexp"

	"exhibit/internal/audit"
	"exhibit/internal/document"
	"exhibit/internal/rules"
)

// EvaluatorFunc inspects already-fetched document metadata and returns the
// flag status plus optional details. Evaluators are pure and synchronous;
// anything needing I/O belongs in a dedicated check, not here.
type EvaluatorFunc func(doc *document.Document) (audit.FlagStatus, string, error)

// EvaluatorRegistry maps rule codes to evaluators. Codes without an entry
// evaluate to pass, so rules can be added administratively before code
// catches up.
type EvaluatorRegistry struct {
	evaluators map[string]EvaluatorFunc
}

// screenshotPattern catches filenames produced by common screen-capture
// tools.
var screenshotPattern = regexp.MustCompile(`(?i)(screen[ _-]?shot|screencap|capture[ _-]?\d)`)

// NewEvaluatorRegistry returns a registry preloaded with the built-in rule
// evaluators. The reserved custody and source-authority codes are registered
// as no-op passes: their real evaluation happens in the engine's dedicated
// checks, which supersede these placeholders; registering them keeps the
// rules visible in the constitution listing.
func NewEvaluatorRegistry() *EvaluatorRegistry {
	r := &EvaluatorRegistry{evaluators: make(map[string]EvaluatorFunc)}

	r.Register(rules.CodeNativeFormat, func(doc *document.Document) (audit.FlagStatus, string, error) {
		if doc.Metadata.IsScreenshot || doc.Metadata.IsConverted {
			return audit.FlagFail, "document is not in its native format", nil
		}
		return audit.FlagPass, "", nil
	})

	r.Register(rules.CodeIntactMetadata, func(doc *document.Document) (audit.FlagStatus, string, error) {
		if doc.Metadata.ContentHash == "" {
			return audit.FlagWarn, "content hash is missing", nil
		}
		if doc.Metadata.OriginalFilename == "" {
			return audit.FlagWarn, "original filename is missing", nil
		}
		return audit.FlagPass, "", nil
	})

	r.Register(rules.CodeNoScreenshots, func(doc *document.Document) (audit.FlagStatus, string, error) {
		if doc.Metadata.IsScreenshot {
			return audit.FlagFail, "metadata flags the document as a screenshot", nil
		}
		if screenshotPattern.MatchString(doc.Filename) {
			return audit.FlagFail, fmt.Sprintf("filename %q matches a screenshot pattern", doc.Filename), nil
		}
		return audit.FlagPass, "", nil
	})

	r.Register(rules.CodeNoSummaries, func(doc *document.Document) (audit.FlagStatus, string, error) {
		if doc.Metadata.IsSummary {
			return audit.FlagFail, "document is a summary or derived artifact", nil
		}
		return audit.FlagPass, "", nil
	})

	r.Register(rules.CodeProvenanceRequired, func(doc *document.Document) (audit.FlagStatus, string, error) {
		if !doc.Metadata.HasProvenance() {
			return audit.FlagWarn, "no source identifier, retrieval timestamp, or source URL present", nil
		}
		return audit.FlagPass, "", nil
	})

	noop := func(*document.Document) (audit.FlagStatus, string, error) {
		return audit.FlagPass, "", nil
	}
	r.Register(rules.CodeChainOfCustody, noop)
	r.Register(rules.CodeSourceAuthority, noop)

	return r
}

// Register adds or replaces the evaluator for a rule code.
func (r *EvaluatorRegistry) Register(code string, fn EvaluatorFunc) {
	r.evaluators[code] = fn
}

// Evaluate runs the evaluator registered for rule.Code, recovering from
// panics so one misbehaving evaluator cannot take down the whole decision.
func (r *EvaluatorRegistry) Evaluate(rule rules.AdmissibilityRule, doc *document.Document) (status audit.FlagStatus, details string, err error) {
	fn, ok := r.evaluators[rule.Code]
	if !ok {
		return audit.FlagPass, "", nil
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			status = audit.FlagPass
			details = ""
			err = fmt.Errorf("evaluator %s panicked: %v", rule.Code, recovered)
		}
	}()
	return fn(doc)
}
