package sourceauth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore persists the approved-source catalog in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetByType(ctx context.Context, sourceType string) (*ApprovedSource, error) {
	query := `
		SELECT source_type, category, description, authentication_rules
		FROM approved_sources
		WHERE LOWER(source_type) = LOWER($1)
	`

	var src ApprovedSource
	var category string
	err := s.db.QueryRowContext(ctx, query, sourceType).Scan(
		&src.SourceType, &category, &src.Description, &src.AuthenticationRules,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query approved source: %w", err)
	}
	src.Category = Category(category)
	return &src, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]ApprovedSource, error) {
	query := `
		SELECT source_type, category, description, authentication_rules
		FROM approved_sources
		ORDER BY source_type
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query approved sources: %w", err)
	}
	defer rows.Close()

	var result []ApprovedSource
	for rows.Next() {
		var src ApprovedSource
		var category string
		if err := rows.Scan(&src.SourceType, &category, &src.Description, &src.AuthenticationRules); err != nil {
			return nil, fmt.Errorf("scan approved source: %w", err)
		}
		src.Category = Category(category)
		result = append(result, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate approved sources: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM approved_sources`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count approved sources: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Insert(ctx context.Context, source ApprovedSource) error {
	query := `
		INSERT INTO approved_sources (source_type, category, description, authentication_rules)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (source_type) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		source.SourceType, string(source.Category), source.Description, source.AuthenticationRules,
	)
	if err != nil {
		return fmt.Errorf("insert approved source: %w", err)
	}
	return nil
}
