// Package memory provides in-memory implementations of the catalog
// collaborators: a client-side filtered data source, an address bar with a
// navigation history and a key-value store.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/catalog"
)

// Compile-time interface verification.
var (
	_ catalog.Source      = (*Source)(nil)
	_ catalog.FacetSource = (*Source)(nil)
)

// Source is a catalog.Source over a static set of entries. Filtering,
// sorting and paging happen on the client with catalog.Matcher.
type Source struct {
	mu      sync.RWMutex
	entries []*catalog.Entry
	matcher catalog.Matcher
}

// Option configures a Source.
type Option func(*Source)

// WithMatcher replaces catalog.DefaultMatcher.
func WithMatcher(m catalog.Matcher) Option {
	return func(s *Source) {
		s.matcher = m
	}
}

// NewSource creates a Source serving entries.
func NewSource(entries []*catalog.Entry, opts ...Option) *Source {
	s := &Source{
		entries: entries,
		matcher: catalog.DefaultMatcher,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEntries replaces the served entries.
func (s *Source) SetEntries(entries []*catalog.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

// List filters entries of params.Kind, sorts them and returns the requested
// page. Total is the filtered count. A page past the end yields no items.
func (s *Source) List(ctx context.Context, params catalog.ListParams) (*catalog.ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := catalog.SearchQuery{Text: params.Query, Facet: params.Facet}
	matched := catalog.FilterEntries(s.ofKind(params.Kind), q, s.matcher)
	sortEntries(matched, params.Sort)

	limit := params.Limit
	if limit <= 0 {
		limit = catalog.DefaultLimit
	}
	params.Limit = limit

	start := min(max(params.Offset(), 0), len(matched))
	end := start + min(limit, len(matched)-start)

	return &catalog.ResultSet{
		Items: matched[start:end],
		Total: len(matched),
	}, nil
}

// ListFacetValues returns the distinct categories of entries of kind.
func (s *Source) ListFacetValues(ctx context.Context, kind catalog.Kind) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.FacetValues(s.ofKind(kind)), nil
}

// ofKind returns a copy of the entries of kind. An empty kind selects all.
func (s *Source) ofKind(kind catalog.Kind) []*catalog.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*catalog.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if kind == "" || e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func sortEntries(entries []*catalog.Entry, order catalog.SortOrder) {
	switch order {
	case catalog.SortByUpdatedAt:
		slices.SortStableFunc(entries, func(a, b *catalog.Entry) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	case catalog.SortByName, "":
		slices.SortStableFunc(entries, func(a, b *catalog.Entry) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}
}
