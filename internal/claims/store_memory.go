package claims

import (
	"context"
	"sort"
	"sync"
)

// InMemoryCatalogStore backs unit tests and development mode.
type InMemoryCatalogStore struct {
	mu           sync.RWMutex
	claimTypes   map[string]ClaimType
	requirements map[string][]SourceRequirement
}

func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		claimTypes:   make(map[string]ClaimType),
		requirements: make(map[string][]SourceRequirement),
	}
}

func (s *InMemoryCatalogStore) GetClaimType(_ context.Context, claimTypeID string) (*ClaimType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ct, ok := s.claimTypes[claimTypeID]
	if !ok {
		return nil, nil
	}
	return &ct, nil
}

func (s *InMemoryCatalogStore) ListClaimTypes(_ context.Context) ([]ClaimType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ClaimType, 0, len(s.claimTypes))
	for _, ct := range s.claimTypes {
		result = append(result, ct)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *InMemoryCatalogStore) ListRequirements(_ context.Context, claimTypeID string) ([]SourceRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SourceRequirement{}, s.requirements[claimTypeID]...), nil
}

func (s *InMemoryCatalogStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.claimTypes), nil
}

func (s *InMemoryCatalogStore) InsertClaimType(_ context.Context, claimType ClaimType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claimTypes[claimType.ID] = claimType
	return nil
}

func (s *InMemoryCatalogStore) InsertRequirement(_ context.Context, requirement SourceRequirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requirements[requirement.ClaimTypeID] = append(s.requirements[requirement.ClaimTypeID], requirement)
	return nil
}

// InMemoryAnalysisStore keeps the latest analysis per (document, claim type).
type InMemoryAnalysisStore struct {
	mu       sync.RWMutex
	analyses map[analysisKey]Analysis
}

type analysisKey struct {
	documentID  string
	claimTypeID string
}

func NewInMemoryAnalysisStore() *InMemoryAnalysisStore {
	return &InMemoryAnalysisStore{analyses: make(map[analysisKey]Analysis)}
}

func (s *InMemoryAnalysisStore) Upsert(_ context.Context, analysis *Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[analysisKey{analysis.DocumentID, analysis.ClaimTypeID}] = *analysis
	return nil
}

func (s *InMemoryAnalysisStore) Get(_ context.Context, documentID, claimTypeID string) (*Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	analysis, ok := s.analyses[analysisKey{documentID, claimTypeID}]
	if !ok {
		return nil, nil
	}
	return &analysis, nil
}
