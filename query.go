package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// ViewMode is the presentation of a result list.
type ViewMode string

// ViewMode constants. ViewGrid is the default.
const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Valid reports whether v is a known view mode.
func (v ViewMode) Valid() bool {
	return v == ViewGrid || v == ViewList
}

// Address state parameter names.
const (
	ParamText  = "q"
	ParamFacet = "facet"
	ParamPage  = "page"
	ParamView  = "view"
)

// SearchQuery is the canonical state of a listing page.
// An empty Facet means no facet is selected.
type SearchQuery struct {
	Text  string   `json:"text"`
	Facet string   `json:"facet"`
	Page  int      `json:"page"`
	View  ViewMode `json:"view"`
}

// DefaultQuery returns the query a listing starts with.
func DefaultQuery() SearchQuery {
	return SearchQuery{Page: 1, View: ViewGrid}
}

// Normalize replaces out-of-domain fields with their defaults.
func (q SearchQuery) Normalize() SearchQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if !q.View.Valid() {
		q.View = ViewGrid
	}
	return q
}

// IsDefault reports whether q equals DefaultQuery after normalization.
func (q SearchQuery) IsDefault() bool {
	return q.Normalize() == DefaultQuery()
}

// Encode returns the canonical query string of q. Fields at their default
// value are omitted and the remaining keys are always written in the order
// q, facet, page, view. The result has no leading "?".
func (q SearchQuery) Encode() string {
	q = q.Normalize()

	var parts []string
	if q.Text != "" {
		parts = append(parts, ParamText+"="+url.QueryEscape(q.Text))
	}
	if q.Facet != "" {
		parts = append(parts, ParamFacet+"="+url.QueryEscape(q.Facet))
	}
	if q.Page != 1 {
		parts = append(parts, ParamPage+"="+strconv.Itoa(q.Page))
	}
	if q.View != ViewGrid {
		parts = append(parts, ParamView+"="+url.QueryEscape(string(q.View)))
	}
	return strings.Join(parts, "&")
}

// ParseQuery parses a raw address query string into a SearchQuery.
// It never fails: malformed or missing fields fall back to their defaults.
// A leading "?" is ignored.
func ParseQuery(raw string) SearchQuery {
	q := DefaultQuery()

	// url.ParseQuery keeps every pair it could decode even when it reports
	// an error for another one.
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if values == nil {
		return q
	}

	q.Text = values.Get(ParamText)
	q.Facet = values.Get(ParamFacet)
	if page, err := strconv.Atoi(values.Get(ParamPage)); err == nil {
		q.Page = page
	}
	q.View = ViewMode(values.Get(ParamView))

	return q.Normalize()
}

// ListParams returns the data source request for q.
func (q SearchQuery) ListParams(kind Kind, limit int, sort SortOrder) ListParams {
	q = q.Normalize()
	return ListParams{
		Kind:  kind,
		Query: q.Text,
		Facet: q.Facet,
		Page:  q.Page,
		Limit: limit,
		Sort:  sort,
	}
}
