package sourceauth

import "context"

// Store persists the approved-source catalog.
type Store interface {
	// GetByType returns (nil, nil) when the source type is not cataloged.
	GetByType(ctx context.Context, sourceType string) (*ApprovedSource, error)
	List(ctx context.Context) ([]ApprovedSource, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, source ApprovedSource) error
}
