package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore persists request records in the admissibility_requests table.
// Flags are stored as a JSONB column: they are embedded in the record and
// never queried independently.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, record *Request) error {
	flags, err := json.Marshal(record.Flags)
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}

	query := `
		INSERT INTO admissibility_requests (
			request_id, document_id, claim_type_id, requestor_ref,
			status, approval_scope, rejection_reason,
			missing_sources, violated_articles, flags, reviewed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(ctx, query,
		record.RequestID,
		record.DocumentID,
		nullString(record.ClaimTypeID),
		nullString(record.RequestorRef),
		string(record.Status),
		nullString(record.ApprovalScope),
		nullString(record.RejectionReason),
		pq.Array(record.MissingSources),
		pq.Array(record.ViolatedArticles),
		flags,
		record.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("insert admissibility request: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByDocument(ctx context.Context, documentID string) ([]Request, error) {
	query := selectColumns + `
		WHERE document_id = $1
		ORDER BY reviewed_at DESC
	`
	return s.queryRecords(ctx, query, documentID)
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Request, error) {
	query := selectColumns + `
		ORDER BY reviewed_at DESC
		LIMIT $1
	`
	return s.queryRecords(ctx, query, limit)
}

const selectColumns = `
	SELECT request_id, document_id, COALESCE(claim_type_id, ''), COALESCE(requestor_ref, ''),
		   status, COALESCE(approval_scope, ''), COALESCE(rejection_reason, ''),
		   missing_sources, violated_articles, flags, reviewed_at
	FROM admissibility_requests
`

func (s *PostgresStore) queryRecords(ctx context.Context, query string, args ...any) ([]Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query admissibility requests: %w", err)
	}
	defer rows.Close()

	var records []Request
	for rows.Next() {
		var (
			r        Request
			status   string
			flagsRaw []byte
		)
		err := rows.Scan(
			&r.RequestID, &r.DocumentID, &r.ClaimTypeID, &r.RequestorRef,
			&status, &r.ApprovalScope, &r.RejectionReason,
			pq.Array(&r.MissingSources), pq.Array(&r.ViolatedArticles),
			&flagsRaw, &r.ReviewedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan admissibility request: %w", err)
		}
		r.Status = Status(status)
		if err := json.Unmarshal(flagsRaw, &r.Flags); err != nil {
			return nil, fmt.Errorf("decode flags: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admissibility requests: %w", err)
	}
	return records, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
