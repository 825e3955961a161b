package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/catalog"
)

// Ensure LoggingKeyValueStore implements catalog.KeyValueStore.
var _ catalog.KeyValueStore = (*LoggingKeyValueStore)(nil)

// LoggingKeyValueStore wraps a KeyValueStore with debug logging.
// Values are not logged.
type LoggingKeyValueStore struct {
	next   catalog.KeyValueStore
	logger *slog.Logger
}

// NewLoggingKeyValueStore creates a new LoggingKeyValueStore.
func NewLoggingKeyValueStore(next catalog.KeyValueStore, logger *slog.Logger) *LoggingKeyValueStore {
	return &LoggingKeyValueStore{next: next, logger: logger}
}

// Get delegates to the wrapped store and logs the operation. A missing key
// is logged as found=false rather than as an error.
func (s *LoggingKeyValueStore) Get(ctx context.Context, key string) (value string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"key", key, "duration", time.Since(begin)}
		switch {
		case err == nil:
			attrs = append(attrs, "found", true)
		case catalog.ErrorCode(err) == catalog.ENOTFOUND:
			attrs = append(attrs, "found", false)
		default:
			attrs = append(attrs, "err", err)
		}
		s.logger.Debug("kv get", attrs...)
	}(time.Now())
	return s.next.Get(ctx, key)
}

// Set delegates to the wrapped store and logs the operation.
func (s *LoggingKeyValueStore) Set(ctx context.Context, key, value string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("kv set",
			"key", key,
			"bytes", len(value),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Set(ctx, key, value)
}
