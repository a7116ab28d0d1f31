package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresStore reads documents and linked sources from the tables owned by
// the ingestion pipeline. Read-only from this core's perspective.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	query := `
		SELECT id, filename, COALESCE(metadata, '{}'::jsonb)
		FROM documents
		WHERE id = $1
	`

	var (
		doc         Document
		metadataRaw []byte
	)
	err := s.db.QueryRowContext(ctx, query, documentID).Scan(&doc.ID, &doc.Filename, &metadataRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}

	if err := json.Unmarshal(metadataRaw, &doc.Metadata); err != nil {
		return nil, fmt.Errorf("decode document metadata: %w", err)
	}

	sources, err := s.linkedSources(ctx, documentID)
	if err != nil {
		return nil, err
	}
	doc.LinkedSources = sources
	return &doc, nil
}

func (s *PostgresStore) linkedSources(ctx context.Context, documentID string) ([]LinkedSource, error) {
	query := `
		SELECT source_type, name
		FROM document_sources
		WHERE document_id = $1
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("query linked sources: %w", err)
	}
	defer rows.Close()

	var sources []LinkedSource
	for rows.Next() {
		var src LinkedSource
		if err := rows.Scan(&src.SourceType, &src.Name); err != nil {
			return nil, fmt.Errorf("scan linked source: %w", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate linked sources: %w", err)
	}
	return sources, nil
}
