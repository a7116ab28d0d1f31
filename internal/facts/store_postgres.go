package facts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostgresStore persists statements of fact in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, fact *StatementOfFact) error {
	query := `
		INSERT INTO statement_of_facts (
			id, case_id, fact_number, fact_date, fact_text,
			exhibit_reference, document_id, source_quote,
			has_conflict, conflict_with_fact_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var conflictWith *uuid.UUID
	if fact.ConflictWithFactID != nil {
		conflictWith = fact.ConflictWithFactID
	}
	var factDate sql.NullTime
	if fact.FactDate != nil {
		factDate = sql.NullTime{Time: *fact.FactDate, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		fact.ID,
		nullString(fact.CaseID),
		fact.FactNumber,
		factDate,
		fact.FactText,
		fact.ExhibitReference,
		nullString(fact.DocumentID),
		nullString(fact.SourceQuote),
		fact.HasConflict,
		conflictWith,
	)
	if err != nil {
		return fmt.Errorf("insert statement of fact: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCase(ctx context.Context, caseID string) ([]StatementOfFact, error) {
	query := `
		SELECT id, COALESCE(case_id, ''), fact_number, fact_date, fact_text,
			   exhibit_reference, COALESCE(document_id, ''), COALESCE(source_quote, ''),
			   has_conflict, conflict_with_fact_id
		FROM statement_of_facts
		WHERE case_id = $1
		ORDER BY fact_number ASC
	`
	return s.queryFacts(ctx, query, caseID)
}

func (s *PostgresStore) ListByCaseAndDate(ctx context.Context, caseID string, date time.Time) ([]StatementOfFact, error) {
	query := `
		SELECT id, COALESCE(case_id, ''), fact_number, fact_date, fact_text,
			   exhibit_reference, COALESCE(document_id, ''), COALESCE(source_quote, ''),
			   has_conflict, conflict_with_fact_id
		FROM statement_of_facts
		WHERE case_id = $1 AND fact_date::date = $2::date
		ORDER BY fact_number ASC
	`
	return s.queryFacts(ctx, query, caseID, date)
}

func (s *PostgresStore) NextFactNumber(ctx context.Context, caseID string) (int, error) {
	var next int
	query := `
		SELECT COALESCE(MAX(fact_number), 0) + 1
		FROM statement_of_facts
		WHERE case_id = $1
	`
	if err := s.db.QueryRowContext(ctx, query, caseID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next fact number: %w", err)
	}
	return next, nil
}

func (s *PostgresStore) queryFacts(ctx context.Context, query string, args ...any) ([]StatementOfFact, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query statement of facts: %w", err)
	}
	defer rows.Close()

	var result []StatementOfFact
	for rows.Next() {
		var (
			f            StatementOfFact
			factDate     sql.NullTime
			conflictWith *uuid.UUID
		)
		err := rows.Scan(
			&f.ID, &f.CaseID, &f.FactNumber, &factDate, &f.FactText,
			&f.ExhibitReference, &f.DocumentID, &f.SourceQuote,
			&f.HasConflict, &conflictWith,
		)
		if err != nil {
			return nil, fmt.Errorf("scan statement of fact: %w", err)
		}
		if factDate.Valid {
			d := factDate.Time
			f.FactDate = &d
		}
		f.ConflictWithFactID = conflictWith
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statement of facts: %w", err)
	}
	return result, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
