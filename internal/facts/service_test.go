package facts

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	dErrors "exhibit/pkg/domain-errors"
)

type LedgerSuite struct {
	suite.Suite
	ctx    context.Context
	store  *InMemoryStore
	ledger *Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ledger = NewLedger(s.store, NewNegationDetector(), log, nil)
}

func (s *LedgerSuite) newFact(caseID, text string, date time.Time) *StatementOfFact {
	return &StatementOfFact{
		CaseID:           caseID,
		FactDate:         &date,
		FactText:         text,
		ExhibitReference: "Exhibit A",
	}
}

func (s *LedgerSuite) TestAddFactAssignsIDAndNumber() {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first, err := s.ledger.AddFact(s.ctx, s.newFact("case-1", "Defendant signed the purchase agreement", date))
	s.Require().NoError(err)
	second, err := s.ledger.AddFact(s.ctx, s.newFact("case-1", "Plaintiff tendered the purchase deposit", date))
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, first.ID)
	s.Equal(1, first.FactNumber)
	s.Equal(2, second.FactNumber)
}

func (s *LedgerSuite) TestExplicitFactNumberIsKept() {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fact := s.newFact("case-1", "Defendant signed the purchase agreement", date)
	fact.FactNumber = 40

	added, err := s.ledger.AddFact(s.ctx, fact)
	s.Require().NoError(err)
	s.Equal(40, added.FactNumber)
}

func (s *LedgerSuite) TestConflictFlagsOnlyTheNewFact() {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	prior, err := s.ledger.AddFact(s.ctx,
		s.newFact("case-1", "Defendant delivered the equipment shipment to the warehouse facility", date))
	s.Require().NoError(err)

	conflicting, err := s.ledger.AddFact(s.ctx,
		s.newFact("case-1", "Defendant never delivered the equipment shipment to the warehouse facility", date))
	s.Require().NoError(err)

	s.True(conflicting.HasConflict)
	s.Require().NotNil(conflicting.ConflictWithFactID)
	s.Equal(prior.ID, *conflicting.ConflictWithFactID)

	// The earlier fact is never retroactively updated.
	statement, err := s.ledger.GetStatementOfFacts(s.ctx, "case-1")
	s.Require().NoError(err)
	s.False(statement.Facts[0].HasConflict)
	s.Require().Len(statement.Conflicts, 1)
	s.Equal(conflicting.ID, statement.Conflicts[0].FactID)
}

func (s *LedgerSuite) TestNoConflictAcrossDates() {
	d1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := s.ledger.AddFact(s.ctx,
		s.newFact("case-1", "Defendant delivered the equipment shipment to the warehouse facility", d1))
	s.Require().NoError(err)

	later, err := s.ledger.AddFact(s.ctx,
		s.newFact("case-1", "Defendant never delivered the equipment shipment to the warehouse facility", d2))
	s.Require().NoError(err)
	s.False(later.HasConflict)
}

func (s *LedgerSuite) TestNoConflictDetectionWithoutCaseOrDate() {
	fact := &StatementOfFact{
		FactText:         "Defendant never delivered the equipment shipment to the warehouse facility",
		ExhibitReference: "Exhibit B",
	}
	added, err := s.ledger.AddFact(s.ctx, fact)
	s.Require().NoError(err)
	s.False(added.HasConflict)
}

func (s *LedgerSuite) TestValidationErrors() {
	_, err := s.ledger.AddFact(s.ctx, &StatementOfFact{ExhibitReference: "Exhibit A"})
	s.Require().Error(err)
	s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))

	_, err = s.ledger.AddFact(s.ctx, &StatementOfFact{FactText: "something happened"})
	s.Require().Error(err)
	s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))
}

func (s *LedgerSuite) TestStatementOrderedByFactNumber() {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	third := s.newFact("case-2", "Third fact about the disputed invoice", date)
	third.FactNumber = 3
	first := s.newFact("case-2", "First fact about the disputed invoice", date)
	first.FactNumber = 1

	_, err := s.ledger.AddFact(s.ctx, third)
	s.Require().NoError(err)
	_, err = s.ledger.AddFact(s.ctx, first)
	s.Require().NoError(err)

	statement, err := s.ledger.GetStatementOfFacts(s.ctx, "case-2")
	s.Require().NoError(err)
	s.Require().Len(statement.Facts, 2)
	s.Equal(1, statement.Facts[0].FactNumber)
	s.Equal(3, statement.Facts[1].FactNumber)
}

func (s *LedgerSuite) TestEmptyCaseReturnsEmptyStatement() {
	statement, err := s.ledger.GetStatementOfFacts(s.ctx, "no-such-case")
	s.Require().NoError(err)
	s.Empty(statement.Facts)
	s.Empty(statement.Conflicts)
}
