package catalog

import (
	"slices"
	"strings"
)

// FieldFunc extracts the searchable values of an entry.
type FieldFunc func(e *Entry) []string

// Searchable entry fields.
var (
	NameField        FieldFunc = func(e *Entry) []string { return []string{e.Name} }
	DescriptionField FieldFunc = func(e *Entry) []string { return []string{e.Description} }
	CategoryField    FieldFunc = func(e *Entry) []string { return []string{e.Category} }
	TagsField        FieldFunc = func(e *Entry) []string { return e.Tags }
)

// Matcher matches entries against a SearchQuery on the client side.
// It is used when no paged remote endpoint is available.
type Matcher struct {
	// Fields searched for the query text. An entry matches when any
	// value of any field contains the text, ignoring case.
	Fields []FieldFunc

	// Facet returns the facet label compared for exact equality with
	// the query facet. Defaults to the entry category.
	Facet func(e *Entry) string
}

// DefaultMatcher searches name, description, category and tags.
var DefaultMatcher = Matcher{
	Fields: []FieldFunc{NameField, DescriptionField, CategoryField, TagsField},
}

// Match reports whether e satisfies q. The facet match is exact and is
// combined with the text match; empty text matches every entry.
func (m Matcher) Match(e *Entry, q SearchQuery) bool {
	if q.Facet != "" && m.facet(e) != q.Facet {
		return false
	}

	needle := strings.ToLower(strings.TrimSpace(q.Text))
	if needle == "" {
		return true
	}

	for _, field := range m.Fields {
		for _, v := range field(e) {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
	}
	return false
}

func (m Matcher) facet(e *Entry) string {
	if m.Facet != nil {
		return m.Facet(e)
	}
	return e.Category
}

// FilterEntries returns the entries matching q in their original order.
// The length of the result is the filtered total.
func FilterEntries(entries []*Entry, q SearchQuery, m Matcher) []*Entry {
	matched := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if m.Match(e, q) {
			matched = append(matched, e)
		}
	}
	return matched
}

// FacetValues returns the distinct non-empty categories of entries, sorted.
func FacetValues(entries []*Entry) []string {
	seen := make(map[string]bool)
	var values []string
	for _, e := range entries {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		values = append(values, e.Category)
	}
	slices.Sort(values)
	return values
}
