package mock

import (
	"context"

	"github.com/fwojciec/catalog"
)

var _ catalog.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is a mock implementation of catalog.KeyValueStore.
type KeyValueStore struct {
	GetFn func(ctx context.Context, key string) (string, error)
	SetFn func(ctx context.Context, key, value string) error
}

func (s *KeyValueStore) Get(ctx context.Context, key string) (string, error) {
	return s.GetFn(ctx, key)
}

func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	return s.SetFn(ctx, key, value)
}

var _ catalog.AddressBar = (*AddressBar)(nil)

// AddressBar is a mock implementation of catalog.AddressBar.
type AddressBar struct {
	ReadFn     func() string
	ReplaceFn  func(raw string)
	OnChangeFn func(listener func(raw string)) func()
}

func (a *AddressBar) Read() string {
	return a.ReadFn()
}

func (a *AddressBar) Replace(raw string) {
	a.ReplaceFn(raw)
}

func (a *AddressBar) OnChange(listener func(raw string)) func() {
	return a.OnChangeFn(listener)
}
