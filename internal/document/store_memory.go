package document

import (
	"context"
	"sync"
)

// InMemoryStore holds documents keyed by ID. Used by unit tests and by
// development mode, where the ingestion pipeline is absent.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[string]*Document)}
}

// Put registers a document. Test and dev seeding only; the gatekeeper itself
// never writes documents.
func (s *InMemoryStore) Put(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

func (s *InMemoryStore) GetDocument(_ context.Context, documentID string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[documentID]
	if !ok {
		return nil, nil
	}
	copied := *doc
	copied.LinkedSources = append([]LinkedSource{}, doc.LinkedSources...)
	return &copied, nil
}
