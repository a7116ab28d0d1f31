package sourceauth

import (
	"context"

	dErrors "exhibit/pkg/domain-errors"
)

// Service resolves a document's declared source type against the catalog.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Classify grades sourceType by catalog lookup. An empty or uncataloged type
// classifies as CategoryUnknown; the caller decides how suspicious that is.
func (s *Service) Classify(ctx context.Context, sourceType string) (Category, *ApprovedSource, error) {
	if sourceType == "" {
		return CategoryUnknown, nil, nil
	}

	src, err := s.store.GetByType(ctx, sourceType)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "approved-source catalog unreachable")
	}
	if src == nil {
		return CategoryUnknown, nil, nil
	}
	return src.Category, src, nil
}

// List returns the full approved-source catalog.
func (s *Service) List(ctx context.Context) ([]ApprovedSource, error) {
	sources, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "approved-source catalog unreachable")
	}
	return sources, nil
}
