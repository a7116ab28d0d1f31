package rules

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists rules and articles in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListActiveRules(ctx context.Context) ([]AdmissibilityRule, error) {
	query := `
		SELECT code, text, failure_action, active
		FROM admissibility_rules
		WHERE active
		ORDER BY code
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query admissibility rules: %w", err)
	}
	defer rows.Close()

	var result []AdmissibilityRule
	for rows.Next() {
		var r AdmissibilityRule
		var action string
		if err := rows.Scan(&r.Code, &r.Text, &action, &r.Active); err != nil {
			return nil, fmt.Errorf("scan admissibility rule: %w", err)
		}
		r.FailureAction = FailureAction(action)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admissibility rules: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) ListActiveArticles(ctx context.Context) ([]ConstitutionArticle, error) {
	query := `
		SELECT number, title, text, active
		FROM legal_constitution
		WHERE active
		ORDER BY number
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query constitution articles: %w", err)
	}
	defer rows.Close()

	var result []ConstitutionArticle
	for rows.Next() {
		var a ConstitutionArticle
		if err := rows.Scan(&a.Number, &a.Title, &a.Text, &a.Active); err != nil {
			return nil, fmt.Errorf("scan constitution article: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate constitution articles: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admissibility_rules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count admissibility rules: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) InsertRule(ctx context.Context, rule AdmissibilityRule) error {
	query := `
		INSERT INTO admissibility_rules (code, text, failure_action, active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, rule.Code, rule.Text, string(rule.FailureAction), rule.Active); err != nil {
		return fmt.Errorf("insert admissibility rule: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertArticle(ctx context.Context, article ConstitutionArticle) error {
	query := `
		INSERT INTO legal_constitution (number, title, text, active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (number) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, article.Number, article.Title, article.Text, article.Active); err != nil {
		return fmt.Errorf("insert constitution article: %w", err)
	}
	return nil
}
