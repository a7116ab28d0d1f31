package custody

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists custody entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO chain_of_custody (
			id, document_id, custodian, action, custody_date,
			location, notes, verification_method
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.DocumentID,
		entry.Custodian,
		string(entry.Action),
		entry.CustodyDate,
		nullString(entry.Location),
		nullString(entry.Notes),
		nullString(entry.VerificationMethod),
	)
	if err != nil {
		return fmt.Errorf("insert custody entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByDocument(ctx context.Context, documentID string) ([]Entry, error) {
	query := `
		SELECT id, document_id, custodian, action, custody_date,
			   COALESCE(location, ''), COALESCE(notes, ''), COALESCE(verification_method, '')
		FROM chain_of_custody
		WHERE document_id = $1
		ORDER BY custody_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("query custody chain: %w", err)
	}
	defer rows.Close()

	var chain []Entry
	for rows.Next() {
		var e Entry
		var action string
		err := rows.Scan(
			&e.ID, &e.DocumentID, &e.Custodian, &action, &e.CustodyDate,
			&e.Location, &e.Notes, &e.VerificationMethod,
		)
		if err != nil {
			return nil, fmt.Errorf("scan custody entry: %w", err)
		}
		e.Action = Action(action)
		chain = append(chain, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custody chain: %w", err)
	}
	return chain, nil
}

func (s *PostgresStore) HasEntries(ctx context.Context, documentID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM chain_of_custody WHERE document_id = $1)`
	if err := s.db.QueryRowContext(ctx, query, documentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check custody entries: %w", err)
	}
	return exists, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
