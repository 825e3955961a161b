package catalog

import "context"

// KeyValueStore is a persistent string key-value store.
// It only holds small values such as serialized search history.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns ENOTFOUND if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// AddressBar is the navigable address state of a listing page.
type AddressBar interface {
	// Read returns the current raw query string.
	Read() string

	// Replace swaps the current raw query string without creating a new
	// navigation history entry. Replace does not notify OnChange listeners.
	Replace(raw string)

	// OnChange registers a listener invoked when the address changes through
	// external navigation (e.g., the back button). The returned function
	// removes the listener.
	OnChange(listener func(raw string)) (unsubscribe func())
}
