package memory

import (
	"slices"
	"sync"

	"github.com/fwojciec/catalog"
)

var _ catalog.AddressBar = (*AddressBar)(nil)

// AddressBar is an in-memory catalog.AddressBar with a navigation history
// stack. Replace rewrites the current history entry; Push, Back and Forward
// simulate external navigation and notify listeners.
type AddressBar struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(string)
}

// NewAddressBar returns an AddressBar whose history holds initial.
func NewAddressBar(initial string) *AddressBar {
	return &AddressBar{entries: []string{initial}}
}

// Read returns the current raw query string.
func (a *AddressBar) Read() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entries[a.index]
}

// Replace rewrites the current history entry without notifying listeners.
func (a *AddressBar) Replace(raw string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries[a.index] = raw
}

// Push navigates to raw, creating a new history entry and discarding any
// forward entries.
func (a *AddressBar) Push(raw string) {
	a.mu.Lock()
	a.entries = append(a.entries[:a.index+1], raw)
	a.index++
	a.mu.Unlock()

	a.notify(raw)
}

// Back moves to the previous history entry. Returns false at the start.
func (a *AddressBar) Back() bool {
	return a.move(-1)
}

// Forward moves to the next history entry. Returns false at the end.
func (a *AddressBar) Forward() bool {
	return a.move(1)
}

// Len returns the number of navigation history entries.
func (a *AddressBar) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// OnChange registers a listener for external navigation. Listeners are
// called in registration order.
func (a *AddressBar) OnChange(fn func(raw string)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextID
	a.nextID++
	a.listeners = append(a.listeners, listener{id: id, fn: fn})

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.listeners = slices.DeleteFunc(a.listeners, func(l listener) bool { return l.id == id })
	}
}

func (a *AddressBar) move(delta int) bool {
	a.mu.Lock()
	next := a.index + delta
	if next < 0 || next >= len(a.entries) {
		a.mu.Unlock()
		return false
	}
	a.index = next
	raw := a.entries[next]
	a.mu.Unlock()

	a.notify(raw)
	return true
}

// notify calls listeners outside the lock so they may read or replace the
// address.
func (a *AddressBar) notify(raw string) {
	a.mu.Lock()
	listeners := slices.Clone(a.listeners)
	a.mu.Unlock()

	for _, l := range listeners {
		l.fn(raw)
	}
}
