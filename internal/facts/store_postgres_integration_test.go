//go:build integration

package facts_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"exhibit/internal/facts"
	"exhibit/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *facts.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = facts.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "statement_of_facts"))
}

func newFact(caseID string, number int, date time.Time, text string) *facts.StatementOfFact {
	return &facts.StatementOfFact{
		ID:               uuid.New(),
		CaseID:           caseID,
		FactNumber:       number,
		FactDate:         &date,
		FactText:         text,
		ExhibitReference: "Exhibit A",
	}
}

func (s *PostgresStoreSuite) TestListByCaseOrderedByNumber() {
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Append(ctx, newFact("case-1", 2, date, "Second fact about the invoice")))
	s.Require().NoError(s.store.Append(ctx, newFact("case-1", 1, date, "First fact about the invoice")))
	s.Require().NoError(s.store.Append(ctx, newFact("case-2", 1, date, "Unrelated case fact")))

	list, err := s.store.ListByCase(ctx, "case-1")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(1, list[0].FactNumber)
	s.Equal(2, list[1].FactNumber)
}

func (s *PostgresStoreSuite) TestListByCaseAndDateMatchesCalendarDay() {
	ctx := context.Background()
	morning := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Append(ctx, newFact("case-1", 1, morning, "Morning fact")))
	s.Require().NoError(s.store.Append(ctx, newFact("case-1", 2, evening, "Evening fact")))
	s.Require().NoError(s.store.Append(ctx, newFact("case-1", 3, nextDay, "Next day fact")))

	sameDay, err := s.store.ListByCaseAndDate(ctx, "case-1", time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Len(sameDay, 2)
}

func (s *PostgresStoreSuite) TestConflictReferenceRoundTrip() {
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	prior := newFact("case-1", 1, date, "Defendant delivered the shipment")
	s.Require().NoError(s.store.Append(ctx, prior))

	conflicting := newFact("case-1", 2, date, "Defendant never delivered the shipment")
	conflicting.HasConflict = true
	conflicting.ConflictWithFactID = &prior.ID
	s.Require().NoError(s.store.Append(ctx, conflicting))

	list, err := s.store.ListByCase(ctx, "case-1")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.False(list[0].HasConflict)
	s.True(list[1].HasConflict)
	s.Require().NotNil(list[1].ConflictWithFactID)
	s.Equal(prior.ID, *list[1].ConflictWithFactID)
}

func (s *PostgresStoreSuite) TestNextFactNumber() {
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	next, err := s.store.NextFactNumber(ctx, "case-empty")
	s.Require().NoError(err)
	s.Equal(1, next)

	s.Require().NoError(s.store.Append(ctx, newFact("case-1", 7, date, "Seventh fact")))

	next, err = s.store.NextFactNumber(ctx, "case-1")
	s.Require().NoError(err)
	s.Equal(8, next)
}
