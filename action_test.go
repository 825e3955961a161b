package catalog_test

import (
	"testing"

	"github.com/fwojciec/catalog"
	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	t.Parallel()

	base := catalog.SearchQuery{Text: "tax", Facet: "Finance", Page: 4, View: catalog.ViewList}

	t.Run("new text resets page", func(t *testing.T) {
		t.Parallel()

		got := catalog.Reduce(base, catalog.SetText("taxes"))

		assert.Equal(t, catalog.SearchQuery{Text: "taxes", Facet: "Finance", Page: 1, View: catalog.ViewList}, got)
	})

	t.Run("same text keeps page", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, base, catalog.Reduce(base, catalog.SetText("tax")))
	})

	t.Run("new facet resets page", func(t *testing.T) {
		t.Parallel()

		got := catalog.Reduce(base, catalog.SetFacet("Sales"))

		assert.Equal(t, "Sales", got.Facet)
		assert.Equal(t, 1, got.Page)
	})

	t.Run("empty facet clears selection", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, catalog.Reduce(base, catalog.SetFacet("")).Facet)
	})

	t.Run("page below one normalizes", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 1, catalog.Reduce(base, catalog.SetPage(-1)).Page)
	})

	t.Run("page is set", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 9, catalog.Reduce(base, catalog.SetPage(9)).Page)
	})

	t.Run("view switch keeps page", func(t *testing.T) {
		t.Parallel()

		got := catalog.Reduce(base, catalog.SetView(catalog.ViewGrid))

		assert.Equal(t, catalog.ViewGrid, got.View)
		assert.Equal(t, 4, got.Page)
	})

	t.Run("unknown view falls back to grid", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, catalog.ViewGrid, catalog.Reduce(base, catalog.SetView("tiles")).View)
	})

	t.Run("unknown action is ignored", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, base, catalog.Reduce(base, catalog.Action{Type: "SET_SORT", Value: "name"}))
	})
}
