package rules

import "context"

// Store persists the rule table and constitution articles.
type Store interface {
	ListActiveRules(ctx context.Context) ([]AdmissibilityRule, error)
	ListActiveArticles(ctx context.Context) ([]ConstitutionArticle, error)
	// Count reports how many rules exist regardless of active flag, so the
	// seed loader can tell an empty store from a deliberately emptied one.
	Count(ctx context.Context) (int, error)
	InsertRule(ctx context.Context, rule AdmissibilityRule) error
	InsertArticle(ctx context.Context, article ConstitutionArticle) error
}
