package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/catalog"
)

// Compile-time interface verification.
var (
	_ catalog.Source      = (*Source)(nil)
	_ catalog.FacetSource = (*Source)(nil)
)

// Source implements catalog.Source with server-side filtering and paging.
// Text matching uses SQLite's lower(), which folds ASCII letters only.
type Source struct {
	db *DB
}

// NewSource creates a new Source.
func NewSource(db *DB) *Source {
	return &Source{db: db}
}

// List returns one page of entries matching params and the filtered total.
func (s *Source) List(ctx context.Context, params catalog.ListParams) (*catalog.ResultSet, error) {
	if params.Limit <= 0 {
		params.Limit = catalog.DefaultLimit
	}

	var where strings.Builder
	var args []any

	where.WriteString(" WHERE 1=1")
	if params.Kind != "" {
		where.WriteString(" AND kind = ?")
		args = append(args, string(params.Kind))
	}
	if params.Facet != "" {
		where.WriteString(" AND category = ?")
		args = append(args, params.Facet)
	}
	if needle := strings.ToLower(strings.TrimSpace(params.Query)); needle != "" {
		where.WriteString(` AND (lower(name) LIKE ? ESCAPE '\'` +
			` OR lower(description) LIKE ? ESCAPE '\'` +
			` OR lower(category) LIKE ? ESCAPE '\'` +
			` OR lower(tags) LIKE ? ESCAPE '\')`)
		pattern := containsPattern(needle)
		args = append(args, pattern, pattern, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries"+where.String(), args...).Scan(&total); err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString("SELECT id, kind, name, description, category, tags, content_hash, updated_at FROM entries")
	query.WriteString(where.String())

	switch params.Sort {
	case catalog.SortByUpdatedAt:
		query.WriteString(" ORDER BY updated_at DESC, lower(name) ASC")
	default:
		query.WriteString(" ORDER BY lower(name) ASC, name ASC")
	}

	appendPagination(&query, &args, params.Limit, params.Offset())

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*catalog.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &catalog.ResultSet{Items: items, Total: total}, nil
}

// ListFacetValues returns the distinct non-empty categories of kind, sorted.
func (s *Source) ListFacetValues(ctx context.Context, kind catalog.Kind) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM entries
		WHERE kind = ? AND category != ''
		ORDER BY category
	`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
