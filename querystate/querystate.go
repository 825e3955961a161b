// Package querystate holds the canonical query of a listing page and keeps it
// synchronized with the navigable address state.
package querystate

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/fwojciec/catalog"
)

// Store holds the current catalog.SearchQuery. Writes are mirrored into the
// address bar with replace semantics so rapid edits never grow the
// navigation history; external navigation is parsed back into the query.
// Subscribers are notified of every change.
type Store struct {
	addr   catalog.AddressBar
	logger *slog.Logger

	// writeMu serializes state changes together with their notifications
	// so subscribers observe changes in order.
	writeMu sync.Mutex

	mu     sync.Mutex
	query  catalog.SearchQuery
	subs   []subscriber
	nextID int

	detach func()
}

type subscriber struct {
	id int
	fn func(catalog.SearchQuery)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for address corrections.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store initialized from the current address and listening
// for external navigation. A malformed address yields default fields.
func New(addr catalog.AddressBar, opts ...Option) *Store {
	s := &Store{
		addr:   addr,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.query = catalog.ParseQuery(addr.Read())
	s.canonicalize(addr.Read(), s.query)
	s.detach = addr.OnChange(s.navigate)
	return s
}

// Read returns the current query.
func (s *Store) Read() catalog.SearchQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Write reduces actions into the current query. When the query changes the
// address is replaced with its canonical encoding and subscribers are
// notified. Write reports whether the query changed.
//
// Subscribers run synchronously and must not call Write themselves.
func (s *Store) Write(actions ...catalog.Action) (catalog.SearchQuery, bool) {
	return s.write(nil, actions)
}

// CompareAndWrite is Write applied only while the current query equals
// expected. Otherwise the query is left unchanged and CompareAndWrite
// reports false.
func (s *Store) CompareAndWrite(expected catalog.SearchQuery, actions ...catalog.Action) (catalog.SearchQuery, bool) {
	return s.write(&expected, actions)
}

func (s *Store) write(expected *catalog.SearchQuery, actions []catalog.Action) (catalog.SearchQuery, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	prev := s.query
	if expected != nil && *expected != prev {
		s.mu.Unlock()
		return prev, false
	}
	next := prev
	for _, a := range actions {
		next = catalog.Reduce(next, a)
	}
	if next == prev {
		s.mu.Unlock()
		return next, false
	}
	s.query = next
	s.mu.Unlock()

	s.addr.Replace(next.Encode())
	s.notify(next)
	return next, true
}

// Subscribe registers fn to be called with every new query. Subscribers are
// called in registration order. The returned function removes the
// subscription.
func (s *Store) Subscribe(fn func(catalog.SearchQuery)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

// Close stops listening for external navigation.
func (s *Store) Close() {
	if s.detach != nil {
		s.detach()
	}
}

// navigate handles external navigation such as the back button.
func (s *Store) navigate(raw string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := catalog.ParseQuery(raw)
	s.canonicalize(raw, next)

	s.mu.Lock()
	if next == s.query {
		s.mu.Unlock()
		return
	}
	s.query = next
	s.mu.Unlock()

	s.notify(next)
}

// canonicalize replaces a non-canonical address with the encoding of q so
// the address never shows fields that were discarded while parsing.
func (s *Store) canonicalize(raw string, q catalog.SearchQuery) {
	if canonical := q.Encode(); canonical != raw {
		s.logger.Debug("address canonicalized", "from", raw, "to", canonical)
		s.addr.Replace(canonical)
	}
}

func (s *Store) notify(q catalog.SearchQuery) {
	s.mu.Lock()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(q)
	}
}
