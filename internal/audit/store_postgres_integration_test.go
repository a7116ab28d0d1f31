//go:build integration

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"exhibit/internal/audit"
	"exhibit/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *audit.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = audit.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "admissibility_requests"))
}

func newRecord(documentID string, status audit.Status, reviewedAt time.Time) *audit.Request {
	return &audit.Request{
		RequestID:  uuid.New(),
		DocumentID: documentID,
		Status:     status,
		Flags: []audit.Flag{
			{RuleCode: "NO_SCREENSHOTS", RuleText: "Screenshots are not admissible", Status: audit.FlagPass},
		},
		MissingSources:   []string{},
		ViolatedArticles: []string{},
		ReviewedAt:       reviewedAt,
	}
}

func (s *PostgresStoreSuite) TestAppendAndListByDocument() {
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	older := newRecord("doc-1", audit.StatusApproved, base)
	older.ApprovalScope = "Document admissible as a basis for legal analysis"
	newer := newRecord("doc-1", audit.StatusRejected, base.Add(time.Hour))
	newer.RejectionReason = "Screenshots are not admissible"
	newer.ViolatedArticles = []string{"Article 3: Original Evidence [NO_SCREENSHOTS]"}

	s.Require().NoError(s.store.Append(ctx, older))
	s.Require().NoError(s.store.Append(ctx, newer))
	s.Require().NoError(s.store.Append(ctx, newRecord("doc-2", audit.StatusApproved, base)))

	records, err := s.store.ListByDocument(ctx, "doc-1")
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	s.Equal(newer.RequestID, records[0].RequestID)
	s.Equal(audit.StatusRejected, records[0].Status)
	s.Equal("Screenshots are not admissible", records[0].RejectionReason)
	s.Equal([]string{"Article 3: Original Evidence [NO_SCREENSHOTS]"}, records[0].ViolatedArticles)
	s.Require().Len(records[0].Flags, 1)
	s.Equal(audit.FlagPass, records[0].Flags[0].Status)

	s.Equal(older.RequestID, records[1].RequestID)
	s.Equal("Document admissible as a basis for legal analysis", records[1].ApprovalScope)
}

func (s *PostgresStoreSuite) TestListRecentHonorsLimit() {
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		rec := newRecord("doc-1", audit.StatusApproved, base.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(s.store.Append(ctx, rec))
	}

	records, err := s.store.ListRecent(ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(base.Add(4*time.Minute), records[0].ReviewedAt.UTC())
}

func (s *PostgresStoreSuite) TestOptionalFieldsRoundTrip() {
	ctx := context.Background()

	rec := newRecord("doc-opt", audit.StatusInsufficient, time.Now().UTC())
	rec.ClaimTypeID = "breach"
	rec.RequestorRef = "analysis-service"
	rec.MissingSources = []string{"executed contract"}
	s.Require().NoError(s.store.Append(ctx, rec))

	records, err := s.store.ListByDocument(ctx, "doc-opt")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("breach", records[0].ClaimTypeID)
	s.Equal("analysis-service", records[0].RequestorRef)
	s.Equal([]string{"executed contract"}, records[0].MissingSources)
}
