package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exhibit/internal/claims"
	"exhibit/internal/rules"
	"exhibit/internal/sourceauth"
)

func TestLoadPopulatesEmptyStores(t *testing.T) {
	ctx := context.Background()
	ruleStore := rules.NewInMemoryStore()
	sourceStore := sourceauth.NewInMemoryStore()
	claimStore := claims.NewInMemoryCatalogStore()

	require.NoError(t, Load(ctx, ruleStore, sourceStore, claimStore))

	activeRules, err := ruleStore.ListActiveRules(ctx)
	require.NoError(t, err)
	assert.Len(t, activeRules, 7)

	codes := make(map[string]rules.AdmissibilityRule, len(activeRules))
	for _, r := range activeRules {
		codes[r.Code] = r
	}
	for _, code := range []string{
		rules.CodeNativeFormat,
		rules.CodeIntactMetadata,
		rules.CodeNoScreenshots,
		rules.CodeNoSummaries,
		rules.CodeProvenanceRequired,
		rules.CodeChainOfCustody,
		rules.CodeSourceAuthority,
	} {
		assert.Contains(t, codes, code)
	}
	assert.Equal(t, rules.FailureReject, codes[rules.CodeNoScreenshots].FailureAction)

	articles, err := ruleStore.ListActiveArticles(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 4)

	sources, err := sourceStore.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 8)

	excluded, err := sourceStore.GetByType(ctx, "social_media")
	require.NoError(t, err)
	require.NotNil(t, excluded)
	assert.Equal(t, sourceauth.CategoryExcluded, excluded.Category)

	claimTypes, err := claimStore.ListClaimTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, claimTypes, 3)

	requirements, err := claimStore.ListRequirements(ctx, "breach_of_contract")
	require.NoError(t, err)
	assert.NotEmpty(t, requirements)
}

func TestLoadSkipsPopulatedStores(t *testing.T) {
	ctx := context.Background()
	ruleStore := rules.NewInMemoryStore()
	sourceStore := sourceauth.NewInMemoryStore()
	claimStore := claims.NewInMemoryCatalogStore()

	require.NoError(t, ruleStore.InsertRule(ctx, rules.AdmissibilityRule{
		Code: "CUSTOM_RULE", Text: "Locally administered rule", FailureAction: rules.FailureWarn, Active: true,
	}))

	require.NoError(t, Load(ctx, ruleStore, sourceStore, claimStore))

	// The pre-populated rule store is untouched; the others are seeded.
	activeRules, err := ruleStore.ListActiveRules(ctx)
	require.NoError(t, err)
	require.Len(t, activeRules, 1)
	assert.Equal(t, "CUSTOM_RULE", activeRules[0].Code)

	sources, err := sourceStore.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 8)
}

func TestSeededArticlesCiteRuleCodes(t *testing.T) {
	ctx := context.Background()
	ruleStore := rules.NewInMemoryStore()
	require.NoError(t, Load(ctx, ruleStore, sourceauth.NewInMemoryStore(), claims.NewInMemoryCatalogStore()))

	articles, err := ruleStore.ListActiveArticles(ctx)
	require.NoError(t, err)

	cited := false
	for _, a := range articles {
		if strings.Contains(a.Title+" "+a.Text, rules.CodeNoScreenshots) {
			cited = true
			break
		}
	}
	assert.True(t, cited, "no article cites %s", rules.CodeNoScreenshots)
}
