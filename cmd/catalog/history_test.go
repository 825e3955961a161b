package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/catalog"
	main "github.com/fwojciec/catalog/cmd/catalog"
	"github.com/fwojciec/catalog/history"
	"github.com/fwojciec/catalog/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists most recent first", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil, nil)
		ctx := context.Background()
		require.NoError(t, deps.History.Record(ctx, "domains", "sales"))
		require.NoError(t, deps.History.Record(ctx, "domains", "finance"))

		cmd := &main.HistoryCmd{Kind: "domains"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "finance\nsales\n", stdout.String())
	})

	t.Run("clears history", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil, nil)
		ctx := context.Background()
		require.NoError(t, deps.History.Record(ctx, "domains", "sales"))

		cmd := &main.HistoryCmd{Kind: "domains", Clear: true}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Cleared recent searches for domains")
		assert.Empty(t, deps.History.Load(ctx, "domains"))
	})

	t.Run("reports clear failure", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil, nil)
		deps.History = history.NewStore(&mock.KeyValueStore{
			SetFn: func(_ context.Context, _, _ string) error {
				return catalog.Errorf(catalog.EUNAVAILABLE, "Storage unavailable.")
			},
		})

		cmd := &main.HistoryCmd{Kind: "domains", Clear: true}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, catalog.EUNAVAILABLE, catalog.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: Storage unavailable.")
	})

	t.Run("unreadable storage shows no searches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil, nil)
		deps.History = history.NewStore(&mock.KeyValueStore{
			GetFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("permission denied")
			},
		})

		cmd := &main.HistoryCmd{Kind: "kpis"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No recent searches for kpis.")
	})
}
