package rules

import (
	"context"
	"sync"
)

// InMemoryStore backs unit tests and development mode.
type InMemoryStore struct {
	mu       sync.RWMutex
	rules    []AdmissibilityRule
	articles []ConstitutionArticle
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) ListActiveRules(_ context.Context) ([]AdmissibilityRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []AdmissibilityRule
	for _, r := range s.rules {
		if r.Active {
			active = append(active, r)
		}
	}
	return active, nil
}

func (s *InMemoryStore) ListActiveArticles(_ context.Context) ([]ConstitutionArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []ConstitutionArticle
	for _, a := range s.articles {
		if a.Active {
			active = append(active, a)
		}
	}
	return active, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules), nil
}

func (s *InMemoryStore) InsertRule(_ context.Context, rule AdmissibilityRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, rule)
	return nil
}

func (s *InMemoryStore) InsertArticle(_ context.Context, article ConstitutionArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = append(s.articles, article)
	return nil
}
