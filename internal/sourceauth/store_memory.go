package sourceauth

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// InMemoryStore backs unit tests and development mode. Lookup is
// case-insensitive on source type.
type InMemoryStore struct {
	mu      sync.RWMutex
	sources map[string]ApprovedSource
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sources: make(map[string]ApprovedSource)}
}

func (s *InMemoryStore) GetByType(_ context.Context, sourceType string) (*ApprovedSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, ok := s.sources[strings.ToLower(sourceType)]
	if !ok {
		return nil, nil
	}
	return &src, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]ApprovedSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ApprovedSource, 0, len(s.sources))
	for _, src := range s.sources {
		result = append(result, src)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SourceType < result[j].SourceType })
	return result, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources), nil
}

func (s *InMemoryStore) Insert(_ context.Context, source ApprovedSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[strings.ToLower(source.SourceType)] = source
	return nil
}
