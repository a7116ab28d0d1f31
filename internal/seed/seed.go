// Package seed loads the default constitution, rule table, approved-source
// catalog, and claim types into an empty store. Administrative editing of
// rules stays out-of-band; this only bootstraps a fresh deployment.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"exhibit/internal/claims"
	"exhibit/internal/rules"
	"exhibit/internal/sourceauth"
)

//go:embed seed.yaml
var defaultSeed []byte

type document struct {
	Rules              []rules.AdmissibilityRule   `yaml:"rules"`
	Articles           []rules.ConstitutionArticle `yaml:"articles"`
	ApprovedSources    []sourceauth.ApprovedSource `yaml:"approved_sources"`
	ClaimTypes         []claims.ClaimType          `yaml:"claim_types"`
	SourceRequirements []claims.SourceRequirement  `yaml:"source_requirements"`
}

// Load populates each store that is still empty. Stores with existing rows
// are left untouched, so administrative edits survive restarts.
func Load(ctx context.Context, ruleStore rules.Store, sourceStore sourceauth.Store, claimStore claims.CatalogStore) error {
	var doc document
	if err := yaml.Unmarshal(defaultSeed, &doc); err != nil {
		return fmt.Errorf("parse seed document: %w", err)
	}

	if err := loadRules(ctx, ruleStore, doc); err != nil {
		return err
	}
	if err := loadSources(ctx, sourceStore, doc); err != nil {
		return err
	}
	return loadClaims(ctx, claimStore, doc)
}

func loadRules(ctx context.Context, store rules.Store, doc document) error {
	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count rules: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, rule := range doc.Rules {
		if err := store.InsertRule(ctx, rule); err != nil {
			return fmt.Errorf("seed rule %s: %w", rule.Code, err)
		}
	}
	for _, article := range doc.Articles {
		if err := store.InsertArticle(ctx, article); err != nil {
			return fmt.Errorf("seed article %d: %w", article.Number, err)
		}
	}
	return nil
}

func loadSources(ctx context.Context, store sourceauth.Store, doc document) error {
	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count approved sources: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, source := range doc.ApprovedSources {
		if err := store.Insert(ctx, source); err != nil {
			return fmt.Errorf("seed approved source %s: %w", source.SourceType, err)
		}
	}
	return nil
}

func loadClaims(ctx context.Context, store claims.CatalogStore, doc document) error {
	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count claim types: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, claimType := range doc.ClaimTypes {
		if err := store.InsertClaimType(ctx, claimType); err != nil {
			return fmt.Errorf("seed claim type %s: %w", claimType.ID, err)
		}
	}
	for _, requirement := range doc.SourceRequirements {
		if err := store.InsertRequirement(ctx, requirement); err != nil {
			return fmt.Errorf("seed source requirement for %s: %w", requirement.ClaimTypeID, err)
		}
	}
	return nil
}
