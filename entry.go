package catalog

import (
	"context"
	"math"
	"time"
)

// Kind identifies a listing type. Each kind is browsed on its own page and
// keeps its own search history.
type Kind string

// Kind constants for the catalog listings.
const (
	KindConcept         Kind = "concepts"
	KindDomain          Kind = "domains"
	KindKPI             Kind = "kpis"
	KindLineOfBusiness  Kind = "lines-of-business"
	KindSubjectCategory Kind = "subject-categories"
)

// Kinds returns all known listing kinds in display order.
func Kinds() []Kind {
	return []Kind{KindConcept, KindDomain, KindKPI, KindLineOfBusiness, KindSubjectCategory}
}

// Validate returns EINVALID if k is not a known kind.
func (k Kind) Validate() error {
	for _, known := range Kinds() {
		if k == known {
			return nil
		}
	}
	return Errorf(EINVALID, "unknown listing kind %q", string(k))
}

// Entry represents a single catalog record.
type Entry struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // facet label: domain, category or line of business
	Tags        []string  `json:"tags"`
	ContentHash string    `json:"contentHash,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.Name == "" {
		return Errorf(EINVALID, "entry name required")
	}
	return e.Kind.Validate()
}

// SortOrder represents the sort order of a listing.
type SortOrder string

// SortOrder constants for ListParams.
const (
	SortByName      SortOrder = "name"
	SortByUpdatedAt SortOrder = "updated"
)

// DefaultLimit is the page size used when a listing does not configure one.
const DefaultLimit = 12

// ListParams represents a request for one page of a listing.
// Query and Facet may be empty.
type ListParams struct {
	Kind  Kind      `json:"kind"`
	Query string    `json:"q"`
	Facet string    `json:"facet"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Sort  SortOrder `json:"sort"`
}

// Offset returns the zero-based index of the first item of the page.
// An offset that does not fit in an int saturates at math.MaxInt.
func (p ListParams) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return pageOffset(p.Page, p.Limit)
}

// pageOffset returns (page-1)*limit for page, limit >= 1, saturating at
// math.MaxInt instead of overflowing.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// ResultSet is a page of entries together with the filtered total.
type ResultSet struct {
	Items []*Entry `json:"items"`
	Total int      `json:"total"`
}

// Source represents a paged data source for a listing.
// Implementations may be remote (server-side paging) or in-memory
// (client-side filtering); the caller never branches on data origin.
type Source interface {
	// List returns one page of entries matching params together with the
	// total number of matching entries across all pages.
	List(ctx context.Context, params ListParams) (*ResultSet, error)
}

// FacetSource lists the distinct facet values of a listing.
type FacetSource interface {
	ListFacetValues(ctx context.Context, kind Kind) ([]string, error)
}

// EntryWriter writes entries to storage.
type EntryWriter interface {
	// UpsertEntry creates the entry or updates the existing entry with the
	// same kind and name. Returns false if the stored entry was unchanged.
	UpsertEntry(ctx context.Context, entry *Entry) (bool, error)
}
