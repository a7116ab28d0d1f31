package sourceauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) (*Service, *InMemoryStore) {
	t.Helper()
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, ApprovedSource{
		SourceType: "court_filing", Category: CategoryPrimary, Description: "Filed court documents",
	}))
	require.NoError(t, store.Insert(ctx, ApprovedSource{
		SourceType: "news_report", Category: CategorySecondary,
	}))
	require.NoError(t, store.Insert(ctx, ApprovedSource{
		SourceType: "social_media", Category: CategoryExcluded,
	}))
	return NewService(store), store
}

func TestClassify(t *testing.T) {
	service, _ := newCatalog(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		sourceType string
		want       Category
		cataloged  bool
	}{
		{"primary source", "court_filing", CategoryPrimary, true},
		{"secondary source", "news_report", CategorySecondary, true},
		{"excluded source", "social_media", CategoryExcluded, true},
		{"lookup is case insensitive", "Court_Filing", CategoryPrimary, true},
		{"uncataloged type is unknown", "carrier_pigeon", CategoryUnknown, false},
		{"empty type is unknown", "", CategoryUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, src, err := service.Classify(ctx, tt.sourceType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, category)
			if tt.cataloged {
				assert.NotNil(t, src)
			} else {
				assert.Nil(t, src)
			}
		})
	}
}

func TestListIsSortedBySourceType(t *testing.T) {
	service, _ := newCatalog(t)

	sources, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, "court_filing", sources[0].SourceType)
	assert.Equal(t, "news_report", sources[1].SourceType)
	assert.Equal(t, "social_media", sources[2].SourceType)
}
