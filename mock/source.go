package mock

import (
	"context"

	"github.com/fwojciec/catalog"
)

var _ catalog.Source = (*Source)(nil)

// Source is a mock implementation of catalog.Source.
type Source struct {
	ListFn func(ctx context.Context, params catalog.ListParams) (*catalog.ResultSet, error)
}

func (s *Source) List(ctx context.Context, params catalog.ListParams) (*catalog.ResultSet, error) {
	return s.ListFn(ctx, params)
}

var _ catalog.FacetSource = (*FacetSource)(nil)

// FacetSource is a mock implementation of catalog.FacetSource.
type FacetSource struct {
	ListFacetValuesFn func(ctx context.Context, kind catalog.Kind) ([]string, error)
}

func (s *FacetSource) ListFacetValues(ctx context.Context, kind catalog.Kind) ([]string, error) {
	return s.ListFacetValuesFn(ctx, kind)
}

var _ catalog.EntryWriter = (*EntryWriter)(nil)

// EntryWriter is a mock implementation of catalog.EntryWriter.
type EntryWriter struct {
	UpsertEntryFn func(ctx context.Context, entry *catalog.Entry) (bool, error)
}

func (w *EntryWriter) UpsertEntry(ctx context.Context, entry *catalog.Entry) (bool, error) {
	return w.UpsertEntryFn(ctx, entry)
}
