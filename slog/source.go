// Package slog provides logging decorators for catalog services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/catalog"
)

// Ensure LoggingSource implements catalog.Source.
var _ catalog.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with logging of every list request.
type LoggingSource struct {
	next   catalog.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next catalog.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// List delegates to the wrapped source and logs the operation.
func (s *LoggingSource) List(ctx context.Context, params catalog.ListParams) (rs *catalog.ResultSet, err error) {
	defer func(begin time.Time) {
		var count, total int
		if rs != nil {
			count, total = len(rs.Items), rs.Total
		}
		s.logger.Info("list",
			"kind", params.Kind,
			"q", params.Query,
			"facet", params.Facet,
			"page", params.Page,
			"count", count,
			"total", total,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.List(ctx, params)
}

// Ensure LoggingFacetSource implements catalog.FacetSource.
var _ catalog.FacetSource = (*LoggingFacetSource)(nil)

// LoggingFacetSource wraps a FacetSource with logging.
type LoggingFacetSource struct {
	next   catalog.FacetSource
	logger *slog.Logger
}

// NewLoggingFacetSource creates a new LoggingFacetSource.
func NewLoggingFacetSource(next catalog.FacetSource, logger *slog.Logger) *LoggingFacetSource {
	return &LoggingFacetSource{next: next, logger: logger}
}

// ListFacetValues delegates to the wrapped source and logs the operation.
func (s *LoggingFacetSource) ListFacetValues(ctx context.Context, kind catalog.Kind) (values []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("facets",
			"kind", kind,
			"count", len(values),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListFacetValues(ctx, kind)
}
