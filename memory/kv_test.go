package memory_test

import (
	"context"
	"testing"

	"github.com/fwojciec/catalog"
	"github.com/fwojciec/catalog/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := memory.NewKeyValueStore()

	_, err := kv.Get(ctx, "history:concepts")
	require.Error(t, err)
	assert.Equal(t, catalog.ENOTFOUND, catalog.ErrorCode(err))

	require.NoError(t, kv.Set(ctx, "history:concepts", `["tax"]`))
	v, err := kv.Get(ctx, "history:concepts")
	require.NoError(t, err)
	assert.Equal(t, `["tax"]`, v)
}
