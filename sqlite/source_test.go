package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/catalog"
	"github.com/fwojciec/catalog/memory"
	"github.com/fwojciec/catalog/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := setupTestDB(t)
	svc := sqlite.NewEntryService(db)
	for _, e := range catalog.SampleEntries() {
		_, err := svc.UpsertEntry(context.Background(), e)
		require.NoError(t, err)
	}
	return db
}

func names(entries []*catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSource_List(t *testing.T) {
	t.Parallel()

	db := seedTestDB(t)
	source := sqlite.NewSource(db)
	ctx := context.Background()

	tests := []struct {
		name   string
		params catalog.ListParams
		want   []string
		total  int
	}{
		{
			name:   "empty query returns the kind sorted by name",
			params: catalog.ListParams{Kind: catalog.KindConcept, Page: 1, Limit: 10},
			want:   []string{"Account", "Customer", "Invoice", "Order", "Product"},
			total:  5,
		},
		{
			name:   "matches name and description ignoring case",
			params: catalog.ListParams{Kind: catalog.KindConcept, Query: "CUSTOM", Page: 1, Limit: 10},
			want:   []string{"Account", "Customer"},
			total:  2,
		},
		{
			name:   "matches tags",
			params: catalog.ListParams{Kind: catalog.KindConcept, Query: "billing", Page: 1, Limit: 10},
			want:   []string{"Invoice"},
			total:  1,
		},
		{
			name:   "facet is combined with text",
			params: catalog.ListParams{Kind: catalog.KindConcept, Query: "custom", Facet: "Sales", Page: 1, Limit: 10},
			want:   []string{"Customer"},
			total:  1,
		},
		{
			name:   "facet alone",
			params: catalog.ListParams{Kind: catalog.KindKPI, Facet: "Finance", Page: 1, Limit: 10},
			want:   []string{"Days Sales Outstanding", "Revenue Growth"},
			total:  2,
		},
		{
			name:   "facet is exact",
			params: catalog.ListParams{Kind: catalog.KindKPI, Facet: "finance", Page: 1, Limit: 10},
			want:   []string{},
			total:  0,
		},
		{
			name:   "pages with total across pages",
			params: catalog.ListParams{Kind: catalog.KindConcept, Page: 2, Limit: 2},
			want:   []string{"Invoice", "Order"},
			total:  5,
		},
		{
			name:   "page past the end is empty",
			params: catalog.ListParams{Kind: catalog.KindConcept, Page: 9, Limit: 2},
			want:   []string{},
			total:  5,
		},
		{
			name:   "like wildcards are literal",
			params: catalog.ListParams{Kind: catalog.KindConcept, Query: "%", Page: 1, Limit: 10},
			want:   []string{},
			total:  0,
		},
		{
			name:   "sorts by updated time, newest first",
			params: catalog.ListParams{Kind: catalog.KindDomain, Page: 1, Limit: 10, Sort: catalog.SortByUpdatedAt},
			want:   []string{"Human Resources", "Operations", "Sales", "Finance"},
			total:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rs, err := source.List(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(rs.Items))
			assert.Equal(t, tt.total, rs.Total)
		})
	}
}

func TestSource_MatchesMemorySource(t *testing.T) {
	t.Parallel()

	db := seedTestDB(t)
	remote := sqlite.NewSource(db)
	local := memory.NewSource(catalog.SampleEntries())
	ctx := context.Background()

	for _, kind := range catalog.Kinds() {
		for _, q := range []string{"", "a", "data", "sales", " rate "} {
			params := catalog.ListParams{Kind: kind, Query: q, Page: 1, Limit: 3, Sort: catalog.SortByName}

			want, err := local.List(ctx, params)
			require.NoError(t, err)
			got, err := remote.List(ctx, params)
			require.NoError(t, err)

			assert.Equal(t, want.Total, got.Total, "kind=%s q=%q", kind, q)
			assert.Equal(t, names(want.Items), names(got.Items), "kind=%s q=%q", kind, q)
		}
	}
}

func TestSource_ListFacetValues(t *testing.T) {
	t.Parallel()

	source := sqlite.NewSource(seedTestDB(t))
	ctx := context.Background()

	values, err := source.ListFacetValues(ctx, catalog.KindConcept)
	require.NoError(t, err)
	assert.Equal(t, []string{"Finance", "Operations", "Sales"}, values)

	empty, err := sqlite.NewSource(setupTestDB(t)).ListFacetValues(ctx, catalog.KindKPI)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
