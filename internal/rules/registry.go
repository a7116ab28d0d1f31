package rules

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	dErrors "exhibit/pkg/domain-errors"
)

const (
	cacheKeyRules    = "active_rules"
	cacheKeyArticles = "active_articles"
)

// Registry serves the active rule set and constitution from a bounded-TTL
// read-through cache. Request handling only reads; the out-of-band
// administrative path mutates the store and calls Invalidate.
type Registry struct {
	store Store
	cache *gocache.Cache
}

// NewRegistry wraps store with a cache holding entries for ttl.
func NewRegistry(store Store, ttl time.Duration) *Registry {
	return &Registry{
		store: store,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// ActiveRules returns the cached rule set, reloading from the store on expiry.
func (r *Registry) ActiveRules(ctx context.Context) ([]AdmissibilityRule, error) {
	if cached, found := r.cache.Get(cacheKeyRules); found {
		return cached.([]AdmissibilityRule), nil
	}

	loaded, err := r.store.ListActiveRules(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "rule store unreachable")
	}
	r.cache.SetDefault(cacheKeyRules, loaded)
	return loaded, nil
}

// ActiveArticles returns the cached constitution, reloading on expiry.
func (r *Registry) ActiveArticles(ctx context.Context) ([]ConstitutionArticle, error) {
	if cached, found := r.cache.Get(cacheKeyArticles); found {
		return cached.([]ConstitutionArticle), nil
	}

	loaded, err := r.store.ListActiveArticles(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "rule store unreachable")
	}
	r.cache.SetDefault(cacheKeyArticles, loaded)
	return loaded, nil
}

// Invalidate drops cached entries so the next read observes administrative
// edits before the TTL lapses.
func (r *Registry) Invalidate() {
	r.cache.Flush()
}
