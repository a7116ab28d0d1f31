package custody

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore backs unit tests and development mode.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string][]Entry)}
}

func (s *InMemoryStore) Append(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.DocumentID] = append(s.entries[entry.DocumentID], *entry)
	return nil
}

func (s *InMemoryStore) ListByDocument(_ context.Context, documentID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chain := append([]Entry{}, s.entries[documentID]...)
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].CustodyDate.Before(chain[j].CustodyDate)
	})
	return chain, nil
}

func (s *InMemoryStore) HasEntries(_ context.Context, documentID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[documentID]) > 0, nil
}
