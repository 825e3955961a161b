// Package history keeps a bounded, deduplicated list of recent search terms
// per listing namespace on top of a catalog.KeyValueStore.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/fwojciec/catalog"
)

// DefaultCapacity is the number of terms kept per namespace.
const DefaultCapacity = 5

// Key returns the key-value store key holding the history of namespace.
func Key(namespace string) string {
	return "history:" + namespace
}

// Store records recent search terms, most recent first.
// Writes are last-writer-wins.
type Store struct {
	kv       catalog.KeyValueStore
	capacity int
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity sets the number of terms kept per namespace.
// Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithLogger sets the logger used to report discarded payloads.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store persisting into kv.
func NewStore(kv catalog.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		capacity: DefaultCapacity,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capacity returns the number of terms kept per namespace.
func (s *Store) Capacity() int {
	return s.capacity
}

// Load returns the persisted terms of namespace, most recent first.
// A missing, unreadable or malformed payload yields an empty slice.
func (s *Store) Load(ctx context.Context, namespace string) []string {
	raw, err := s.kv.Get(ctx, Key(namespace))
	if err != nil {
		if catalog.ErrorCode(err) != catalog.ENOTFOUND {
			s.logger.Debug("history unreadable", "namespace", namespace, "err", err)
		}
		return []string{}
	}

	var terms []string
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		s.logger.Debug("history discarded", "namespace", namespace, "err", err)
		return []string{}
	}
	return s.normalize(terms)
}

// Record adds term to the front of the history of namespace and persists
// the result. Empty terms and terms already present are ignored. The
// oldest terms are evicted beyond capacity.
func (s *Store) Record(ctx context.Context, namespace, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	terms := s.Load(ctx, namespace)
	if slices.Contains(terms, term) {
		return nil
	}

	terms = append([]string{term}, terms...)
	if len(terms) > s.capacity {
		terms = terms[:s.capacity]
	}
	return s.save(ctx, namespace, terms)
}

// Clear removes every term of namespace.
func (s *Store) Clear(ctx context.Context, namespace string) error {
	return s.save(ctx, namespace, []string{})
}

func (s *Store) save(ctx context.Context, namespace string, terms []string) error {
	buf, err := json.Marshal(terms)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, Key(namespace), string(buf)); err != nil {
		return fmt.Errorf("save history %q: %w", namespace, err)
	}
	return nil
}

// normalize enforces the invariants on a decoded payload that another
// writer may have produced: no empty terms, no duplicates, bounded length.
func (s *Store) normalize(terms []string) []string {
	out := make([]string, 0, min(len(terms), s.capacity))
	for _, t := range terms {
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
		if len(out) == s.capacity {
			break
		}
	}
	return out
}
