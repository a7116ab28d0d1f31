package facts

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryStore backs unit tests and development mode.
type InMemoryStore struct {
	mu    sync.RWMutex
	facts []StatementOfFact
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, fact *StatementOfFact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facts = append(s.facts, *fact)
	return nil
}

func (s *InMemoryStore) ListByCase(_ context.Context, caseID string) ([]StatementOfFact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []StatementOfFact
	for _, f := range s.facts {
		if f.CaseID == caseID {
			result = append(result, f)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].FactNumber < result[j].FactNumber })
	return result, nil
}

func (s *InMemoryStore) ListByCaseAndDate(_ context.Context, caseID string, date time.Time) ([]StatementOfFact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	year, month, day := date.Date()
	var result []StatementOfFact
	for _, f := range s.facts {
		if f.CaseID != caseID || f.FactDate == nil {
			continue
		}
		fy, fm, fd := f.FactDate.Date()
		if fy == year && fm == month && fd == day {
			result = append(result, f)
		}
	}
	return result, nil
}

func (s *InMemoryStore) NextFactNumber(_ context.Context, caseID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	highest := 0
	for _, f := range s.facts {
		if f.CaseID == caseID && f.FactNumber > highest {
			highest = f.FactNumber
		}
	}
	return highest + 1, nil
}
