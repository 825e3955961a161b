package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/catalog"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ catalog.EntryWriter = (*EntryService)(nil)

// EntryService stores catalog entries using SQLite.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// hashEntry computes the xxHash of the searchable content of e.
func hashEntry(e *catalog.Entry) string {
	d := xxhash.New()
	for _, s := range []string{e.Name, e.Description, e.Category, joinTags(e.Tags)} {
		_, _ = d.WriteString(s)
		_, _ = d.WriteString("\x00")
	}
	return hex.EncodeToString(d.Sum(nil))
}

// UpsertEntry creates the entry or updates the stored entry with the same
// kind and name. An entry whose content hash is unchanged is not written and
// false is returned. The entry's ID and ContentHash are set on return.
func (s *EntryService) UpsertEntry(ctx context.Context, entry *catalog.Entry) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, err
	}

	hash := hashEntry(entry)
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}

	var id, storedHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash FROM entries WHERE kind = ? AND name = ?
	`, string(entry.Kind), entry.Name).Scan(&id, &storedHash)

	switch {
	case err == sql.ErrNoRows:
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		entry.ContentHash = hash
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO entries (id, kind, name, description, category, tags, content_hash, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, entry.ID, string(entry.Kind), entry.Name, entry.Description, entry.Category, joinTags(entry.Tags),
			entry.ContentHash, entry.UpdatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	}

	entry.ID = id
	entry.ContentHash = hash
	if storedHash == hash {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE entries
		SET description = ?, category = ?, tags = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, entry.Description, entry.Category, joinTags(entry.Tags), entry.ContentHash,
		entry.UpdatedAt.UTC().Format(time.RFC3339), id)
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindEntryByID retrieves an entry by ID.
func (s *EntryService) FindEntryByID(ctx context.Context, id string) (*catalog.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, name, description, category, tags, content_hash, updated_at
		FROM entries
		WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, catalog.Errorf(catalog.ENOTFOUND, "entry not found")
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry permanently removes an entry.
func (s *EntryService) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return catalog.Errorf(catalog.ENOTFOUND, "entry not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*catalog.Entry, error) {
	var entry catalog.Entry
	var tags, updatedAt string

	if err := row.Scan(&entry.ID, &entry.Kind, &entry.Name, &entry.Description, &entry.Category,
		&tags, &entry.ContentHash, &updatedAt); err != nil {
		return nil, err
	}

	entry.Tags = splitTags(tags)

	var err error
	entry.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
