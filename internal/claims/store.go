package claims

import "context"

// CatalogStore persists claim types and their source requirements.
type CatalogStore interface {
	// GetClaimType returns (nil, nil) when the claim type is unknown.
	GetClaimType(ctx context.Context, claimTypeID string) (*ClaimType, error)
	ListClaimTypes(ctx context.Context) ([]ClaimType, error)
	ListRequirements(ctx context.Context, claimTypeID string) ([]SourceRequirement, error)
	Count(ctx context.Context) (int, error)
	InsertClaimType(ctx context.Context, claimType ClaimType) error
	InsertRequirement(ctx context.Context, requirement SourceRequirement) error
}

// AnalysisStore persists claim analyses keyed by (document, claim type).
type AnalysisStore interface {
	Upsert(ctx context.Context, analysis *Analysis) error
	// Get returns (nil, nil) when no analysis exists for the pair.
	Get(ctx context.Context, documentID, claimTypeID string) (*Analysis, error)
}
