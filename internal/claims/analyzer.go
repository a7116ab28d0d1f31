package claims

import (
	"context"
	"log/slog"

	"exhibit/internal/document"
	dErrors "exhibit/pkg/domain-errors"
)

// Analyzer matches a document's linked sources against a claim type's
// requirements and produces a confidence-scored support analysis.
type Analyzer struct {
	catalog   CatalogStore
	analyses  AnalysisStore
	documents document.Reader
	matcher   Matcher
	logger    *slog.Logger
}

func NewAnalyzer(catalog CatalogStore, analyses AnalysisStore, documents document.Reader, matcher Matcher, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		catalog:   catalog,
		analyses:  analyses,
		documents: documents,
		matcher:   matcher,
		logger:    logger,
	}
}

// AnalyzeClaim evaluates every source requirement of the claim type against
// the document's linked sources and upserts the result keyed by
// (documentID, claimTypeID).
func (a *Analyzer) AnalyzeClaim(ctx context.Context, documentID, claimTypeID, claimText string) (*Analysis, error) {
	claimType, err := a.catalog.GetClaimType(ctx, claimTypeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "claim catalog unreachable")
	}
	if claimType == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "claim type not found")
	}

	doc, err := a.documents.GetDocument(ctx, documentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "document store unreachable")
	}
	if doc == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "document not found")
	}

	requirements, err := a.catalog.ListRequirements(ctx, claimTypeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "claim catalog unreachable")
	}

	analysis := a.evaluate(doc, claimTypeID, claimText, requirements)

	if err := a.analyses.Upsert(ctx, analysis); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "analysis store unreachable")
	}

	a.logger.InfoContext(ctx, "claim analyzed",
		"document_id", documentID,
		"claim_type_id", claimTypeID,
		"status", analysis.Status,
		"confidence", analysis.Confidence,
	)
	return analysis, nil
}

// MissingRequired returns the descriptions of required source requirements
// with no matching linked source. Used by the admissibility engine to
// populate missingSources.
func (a *Analyzer) MissingRequired(ctx context.Context, doc *document.Document, claimTypeID string) ([]string, error) {
	requirements, err := a.catalog.ListRequirements(ctx, claimTypeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "claim catalog unreachable")
	}

	var missing []string
	for _, req := range requirements {
		if !req.IsRequired {
			continue
		}
		if !a.anyMatch(req, doc.LinkedSources) {
			missing = append(missing, req.SourceDescription)
		}
	}
	return missing, nil
}

// GetClaimType returns the claim type or a NotFound error.
func (a *Analyzer) GetClaimType(ctx context.Context, claimTypeID string) (*ClaimType, error) {
	claimType, err := a.catalog.GetClaimType(ctx, claimTypeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "claim catalog unreachable")
	}
	if claimType == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "claim type not found")
	}
	return claimType, nil
}

// ListClaimTypes returns the catalog.
func (a *Analyzer) ListClaimTypes(ctx context.Context) ([]ClaimType, error) {
	claimTypes, err := a.catalog.ListClaimTypes(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "claim catalog unreachable")
	}
	return claimTypes, nil
}

// ListRequirements returns a claim type's source requirements, erroring with
// NotFound for an unknown claim type.
func (a *Analyzer) ListRequirements(ctx context.Context, claimTypeID string) ([]SourceRequirement, error) {
	if _, err := a.GetClaimType(ctx, claimTypeID); err != nil {
		return nil, err
	}
	requirements, err := a.catalog.ListRequirements(ctx, claimTypeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "claim catalog unreachable")
	}
	return requirements, nil
}

func (a *Analyzer) evaluate(doc *document.Document, claimTypeID, claimText string, requirements []SourceRequirement) *Analysis {
	analysis := &Analysis{
		DocumentID:          doc.ID,
		ClaimTypeID:         claimTypeID,
		ClaimText:           claimText,
		SupportedElements:   []string{},
		UnsupportedElements: []string{},
	}

	requiredMissing := false
	for _, req := range requirements {
		if a.anyMatch(req, doc.LinkedSources) {
			analysis.SupportedElements = append(analysis.SupportedElements, req.SourceDescription)
			continue
		}
		analysis.UnsupportedElements = append(analysis.UnsupportedElements, req.SourceDescription)
		if req.IsRequired {
			requiredMissing = true
		}
	}

	supported := len(analysis.SupportedElements)
	unsupported := len(analysis.UnsupportedElements)
	analysis.Confidence = float64(supported) / float64(max(1, supported+unsupported))

	switch {
	case requiredMissing:
		analysis.Status = StatusInsufficient
	case supported > 0:
		analysis.Status = StatusSupported
	default:
		analysis.Status = StatusProvisional
	}
	return analysis
}

func (a *Analyzer) anyMatch(req SourceRequirement, sources []document.LinkedSource) bool {
	for _, src := range sources {
		if a.matcher.Matches(req, src) {
			return true
		}
	}
	return false
}
