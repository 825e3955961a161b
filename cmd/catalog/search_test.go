package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/catalog"
	main "github.com/fwojciec/catalog/cmd/catalog"
	"github.com/fwojciec/catalog/history"
	"github.com/fwojciec/catalog/memory"
	"github.com/fwojciec/catalog/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(source catalog.Source, facets catalog.FacetSource) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Source:  source,
		Facets:  facets,
		History: history.NewStore(memory.NewKeyValueStore()),
		Config:  main.DefaultConfig(),
	}, stdout, stderr
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints grid results", func(t *testing.T) {
		t.Parallel()

		source := memory.NewSource(catalog.SampleEntries())
		deps, stdout, stderr := newDeps(source, source)

		cmd := &main.SearchCmd{Kind: "lines-of-business", Text: "banking"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stderr.String())
		output := stdout.String()
		assert.Contains(t, output, "2 lines-of-business (page 1 of 1)")
		assert.Contains(t, output, "Commercial Banking  Banking")
		assert.Contains(t, output, "Retail Banking      Banking")
		assert.Contains(t, output, "Facets: Banking, Investments")
		assert.Contains(t, output, "Address: ?q=banking")
	})

	t.Run("shows message when nothing matches", func(t *testing.T) {
		t.Parallel()

		source := memory.NewSource(catalog.SampleEntries())
		deps, stdout, _ := newDeps(source, source)

		cmd := &main.SearchCmd{Kind: "concepts", Text: "zzz"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), `No concepts match "zzz".`)
	})

	t.Run("reports fetch failure with user message", func(t *testing.T) {
		t.Parallel()

		source := &mock.Source{
			ListFn: func(_ context.Context, _ catalog.ListParams) (*catalog.ResultSet, error) {
				return nil, errors.New("connection refused")
			},
		}
		facets := &mock.FacetSource{
			ListFacetValuesFn: func(_ context.Context, _ catalog.Kind) ([]string, error) {
				return []string{}, nil
			},
		}
		deps, stdout, stderr := newDeps(source, facets)

		cmd := &main.SearchCmd{Kind: "kpis"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: Unable to load results. Please try again.\n", stderr.String())
		assert.Empty(t, stdout.String())
	})

	t.Run("rejects invalid view", func(t *testing.T) {
		t.Parallel()

		source := memory.NewSource(nil)
		deps, _, stderr := newDeps(source, source)

		cmd := &main.SearchCmd{Kind: "kpis", View: "table"}
		err := cmd.Run(deps)

		assert.Equal(t, catalog.EINVALID, catalog.ErrorCode(err))
		assert.Contains(t, stderr.String(), "view must be")
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		t.Parallel()

		source := memory.NewSource(nil)
		deps, _, stderr := newDeps(source, source)

		cmd := &main.SearchCmd{Kind: "widgets"}
		err := cmd.Run(deps)

		assert.Equal(t, catalog.EINVALID, catalog.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unknown listing kind")
	})

	t.Run("records history", func(t *testing.T) {
		t.Parallel()

		source := memory.NewSource(catalog.SampleEntries())
		deps, _, _ := newDeps(source, source)

		for _, text := range []string{"order", "invoice", "order"} {
			cmd := &main.SearchCmd{Kind: "concepts", Text: text}
			require.NoError(t, cmd.Run(deps))
		}

		assert.Equal(t, []string{"invoice", "order"}, deps.History.Load(context.Background(), "concepts"))
	})
}
