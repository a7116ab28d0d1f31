package audit

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore backs unit tests and development mode.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []Request
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, record *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *record)
	return nil
}

func (s *InMemoryStore) ListByDocument(_ context.Context, documentID string) ([]Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Request
	for _, r := range s.records {
		if r.DocumentID == documentID {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ReviewedAt.After(result[j].ReviewedAt)
	})
	return result, nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := append([]Request{}, s.records...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ReviewedAt.After(recent[j].ReviewedAt)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}
