package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/catalog"
	"github.com/fwojciec/catalog/mock"
	catalogslog "github.com/fwojciec/catalog/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSource_List(t *testing.T) {
	t.Parallel()

	t.Run("logs request with counts and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Source{
			ListFn: func(ctx context.Context, params catalog.ListParams) (*catalog.ResultSet, error) {
				return &catalog.ResultSet{Items: []*catalog.Entry{{Name: "Order"}}, Total: 7}, nil
			},
		}

		source := catalogslog.NewLoggingSource(inner, logger)
		rs, err := source.List(context.Background(), catalog.ListParams{
			Kind:  catalog.KindConcept,
			Query: "order",
			Facet: "Sales",
			Page:  2,
		})

		require.NoError(t, err)
		assert.Equal(t, 7, rs.Total)
		output := buf.String()
		assert.Contains(t, output, "msg=list")
		assert.Contains(t, output, "kind=concepts")
		assert.Contains(t, output, "q=order")
		assert.Contains(t, output, "facet=Sales")
		assert.Contains(t, output, "page=2")
		assert.Contains(t, output, "count=1")
		assert.Contains(t, output, "total=7")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Source{
			ListFn: func(ctx context.Context, params catalog.ListParams) (*catalog.ResultSet, error) {
				return nil, errors.New("connection refused")
			},
		}

		source := catalogslog.NewLoggingSource(inner, logger)
		_, err := source.List(context.Background(), catalog.ListParams{Kind: catalog.KindKPI})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "count=0")
		assert.Contains(t, output, "err=\"connection refused\"")
	})
}

func TestLoggingFacetSource_ListFacetValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.FacetSource{
		ListFacetValuesFn: func(ctx context.Context, kind catalog.Kind) ([]string, error) {
			return []string{"Finance", "Sales"}, nil
		},
	}

	source := catalogslog.NewLoggingFacetSource(inner, logger)
	values, err := source.ListFacetValues(context.Background(), catalog.KindDomain)

	require.NoError(t, err)
	assert.Equal(t, []string{"Finance", "Sales"}, values)
	output := buf.String()
	assert.Contains(t, output, "msg=facets")
	assert.Contains(t, output, "kind=domains")
	assert.Contains(t, output, "count=2")
}
