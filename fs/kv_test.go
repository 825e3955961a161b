package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/catalog"
	"github.com/fwojciec/catalog/fs"
	"github.com/fwojciec/catalog/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: File-backed key-value storage
// Values survive process restarts and writes are atomic

func TestKeyValueStore_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	// Given a store whose file does not exist yet
	store := fs.NewKeyValueStore(filepath.Join(t.TempDir(), "state.json"))

	// When I read a key
	_, err := store.Get(context.Background(), "history:concepts")

	// Then the key is not found
	require.Error(t, err)
	assert.Equal(t, catalog.ENOTFOUND, catalog.ErrorCode(err))
}

func TestKeyValueStore_SetCreatesDirectories(t *testing.T) {
	t.Parallel()

	// Given a store in a directory that does not exist yet
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	store := fs.NewKeyValueStore(path)

	// When I set a value
	require.NoError(t, store.Set(context.Background(), "k", "v"))

	// Then the file exists and no temporary files are left
	_, err := os.Stat(path)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestKeyValueStore_ValuesSurviveReopen(t *testing.T) {
	t.Parallel()

	// Given a value written by one store
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()
	require.NoError(t, fs.NewKeyValueStore(path).Set(ctx, "a", "1"))
	require.NoError(t, fs.NewKeyValueStore(path).Set(ctx, "b", "2"))

	// When a new store reads the same file
	store := fs.NewKeyValueStore(path)

	// Then both values are present
	a, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", a)

	b, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", b)
}

func TestKeyValueStore_CorruptFile(t *testing.T) {
	t.Parallel()

	// Given a file that is not a JSON object
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	store := fs.NewKeyValueStore(path)

	// When I read a key
	_, err := store.Get(context.Background(), "k")

	// Then the decode error is reported
	require.Error(t, err)
	assert.Equal(t, catalog.EINTERNAL, catalog.ErrorCode(err))
}

func TestKeyValueStore_ConcurrentSets(t *testing.T) {
	t.Parallel()

	// Given many concurrent writers to distinct keys
	store := fs.NewKeyValueStore(filepath.Join(t.TempDir(), "state.json"))
	ctx := context.Background()
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Set(ctx, k, k+k))
		}()
	}
	wg.Wait()

	// Then no write is lost
	for _, k := range keys {
		v, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, k+k, v)
	}
}

func TestKeyValueStore_BacksSearchHistory(t *testing.T) {
	t.Parallel()

	// Given search history persisted to a file
	path := filepath.Join(t.TempDir(), "history.json")
	ctx := context.Background()
	require.NoError(t, history.NewStore(fs.NewKeyValueStore(path)).Record(ctx, "concepts", "customer"))
	require.NoError(t, history.NewStore(fs.NewKeyValueStore(path)).Record(ctx, "concepts", "order"))

	// Then a later session restores it
	terms := history.NewStore(fs.NewKeyValueStore(path)).Load(ctx, "concepts")
	assert.Equal(t, []string{"order", "customer"}, terms)
}

func TestKeyValueStore_CanceledContext(t *testing.T) {
	t.Parallel()

	store := fs.NewKeyValueStore(filepath.Join(t.TempDir(), "state.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Set(ctx, "k", "v"), context.Canceled)
	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}
