package claims

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresCatalogStore persists claim types and requirements in PostgreSQL.
type PostgresCatalogStore struct {
	db *sql.DB
}

func NewPostgresCatalog(db *sql.DB) *PostgresCatalogStore {
	return &PostgresCatalogStore{db: db}
}

func (s *PostgresCatalogStore) GetClaimType(ctx context.Context, claimTypeID string) (*ClaimType, error) {
	query := `
		SELECT id, name, description
		FROM claim_types
		WHERE id = $1
	`

	var ct ClaimType
	err := s.db.QueryRowContext(ctx, query, claimTypeID).Scan(&ct.ID, &ct.Name, &ct.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query claim type: %w", err)
	}
	return &ct, nil
}

func (s *PostgresCatalogStore) ListClaimTypes(ctx context.Context) ([]ClaimType, error) {
	query := `
		SELECT id, name, description
		FROM claim_types
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query claim types: %w", err)
	}
	defer rows.Close()

	var result []ClaimType
	for rows.Next() {
		var ct ClaimType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Description); err != nil {
			return nil, fmt.Errorf("scan claim type: %w", err)
		}
		result = append(result, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claim types: %w", err)
	}
	return result, nil
}

func (s *PostgresCatalogStore) ListRequirements(ctx context.Context, claimTypeID string) ([]SourceRequirement, error) {
	query := `
		SELECT claim_type_id, source_category, source_description,
			   COALESCE(authentication_requirement, ''), is_required
		FROM claim_source_requirements
		WHERE claim_type_id = $1
		ORDER BY source_description
	`

	rows, err := s.db.QueryContext(ctx, query, claimTypeID)
	if err != nil {
		return nil, fmt.Errorf("query source requirements: %w", err)
	}
	defer rows.Close()

	var result []SourceRequirement
	for rows.Next() {
		var req SourceRequirement
		err := rows.Scan(
			&req.ClaimTypeID, &req.SourceCategory, &req.SourceDescription,
			&req.AuthenticationRequirement, &req.IsRequired,
		)
		if err != nil {
			return nil, fmt.Errorf("scan source requirement: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate source requirements: %w", err)
	}
	return result, nil
}

func (s *PostgresCatalogStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM claim_types`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count claim types: %w", err)
	}
	return count, nil
}

func (s *PostgresCatalogStore) InsertClaimType(ctx context.Context, claimType ClaimType) error {
	query := `
		INSERT INTO claim_types (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, claimType.ID, claimType.Name, claimType.Description); err != nil {
		return fmt.Errorf("insert claim type: %w", err)
	}
	return nil
}

func (s *PostgresCatalogStore) InsertRequirement(ctx context.Context, requirement SourceRequirement) error {
	query := `
		INSERT INTO claim_source_requirements (
			claim_type_id, source_category, source_description,
			authentication_requirement, is_required
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		requirement.ClaimTypeID, requirement.SourceCategory, requirement.SourceDescription,
		requirement.AuthenticationRequirement, requirement.IsRequired,
	)
	if err != nil {
		return fmt.Errorf("insert source requirement: %w", err)
	}
	return nil
}

// PostgresAnalysisStore persists analyses in the document_claims table.
type PostgresAnalysisStore struct {
	db *sql.DB
}

func NewPostgresAnalysis(db *sql.DB) *PostgresAnalysisStore {
	return &PostgresAnalysisStore{db: db}
}

func (s *PostgresAnalysisStore) Upsert(ctx context.Context, analysis *Analysis) error {
	query := `
		INSERT INTO document_claims (
			document_id, claim_type_id, claim_text,
			supported_elements, unsupported_elements, confidence, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (document_id, claim_type_id) DO UPDATE SET
			claim_text = EXCLUDED.claim_text,
			supported_elements = EXCLUDED.supported_elements,
			unsupported_elements = EXCLUDED.unsupported_elements,
			confidence = EXCLUDED.confidence,
			status = EXCLUDED.status
	`
	_, err := s.db.ExecContext(ctx, query,
		analysis.DocumentID,
		analysis.ClaimTypeID,
		analysis.ClaimText,
		pq.Array(analysis.SupportedElements),
		pq.Array(analysis.UnsupportedElements),
		analysis.Confidence,
		string(analysis.Status),
	)
	if err != nil {
		return fmt.Errorf("upsert claim analysis: %w", err)
	}
	return nil
}

func (s *PostgresAnalysisStore) Get(ctx context.Context, documentID, claimTypeID string) (*Analysis, error) {
	query := `
		SELECT document_id, claim_type_id, claim_text,
			   supported_elements, unsupported_elements, confidence, status
		FROM document_claims
		WHERE document_id = $1 AND claim_type_id = $2
	`

	var analysis Analysis
	var status string
	err := s.db.QueryRowContext(ctx, query, documentID, claimTypeID).Scan(
		&analysis.DocumentID,
		&analysis.ClaimTypeID,
		&analysis.ClaimText,
		pq.Array(&analysis.SupportedElements),
		pq.Array(&analysis.UnsupportedElements),
		&analysis.Confidence,
		&status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query claim analysis: %w", err)
	}
	analysis.Status = AnalysisStatus(status)
	return &analysis, nil
}
