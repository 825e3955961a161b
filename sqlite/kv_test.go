package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/catalog"
	"github.com/fwojciec/catalog/history"
	"github.com/fwojciec/catalog/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueStore(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing key", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewKeyValueStore(setupTestDB(t))

		_, err := store.Get(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, catalog.ENOTFOUND, catalog.ErrorCode(err))
	})

	t.Run("set overwrites previous value", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewKeyValueStore(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "history:concepts", `["a"]`))
		require.NoError(t, store.Set(ctx, "history:concepts", `["b","a"]`))

		v, err := store.Get(ctx, "history:concepts")
		require.NoError(t, err)
		assert.Equal(t, `["b","a"]`, v)
	})

	t.Run("backs search history", func(t *testing.T) {
		t.Parallel()

		h := history.NewStore(sqlite.NewKeyValueStore(setupTestDB(t)))
		ctx := context.Background()

		for _, term := range []string{"a", "b", "c", "d", "e", "f"} {
			require.NoError(t, h.Record(ctx, "kpis", term))
		}

		assert.Equal(t, []string{"f", "e", "d", "c", "b"}, h.Load(ctx, "kpis"))
		assert.Empty(t, h.Load(ctx, "domains"))
	})
}
