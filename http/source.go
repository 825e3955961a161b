// Package http provides a catalog.Source backed by a remote listing
// endpoint that filters and pages on the server.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/catalog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for a single HTTP request.
const DefaultTimeout = 10 * time.Second

// maxBodySize bounds the size of a decoded response body.
const maxBodySize = 8 << 20

// DefaultRetryDelays returns the backoff delays for retried requests: 250ms, 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{250 * time.Millisecond, 500 * time.Millisecond, time.Second}
}

// Ensure Source implements catalog.Source and catalog.FacetSource at compile time.
var (
	_ catalog.Source      = (*Source)(nil)
	_ catalog.FacetSource = (*Source)(nil)
)

// Source lists catalog entries from a remote endpoint:
//
//	GET {base}/{kind}?q=&facet=&page=&limit=&sort=  → {"items": [...], "total": n}
//	GET {base}/{kind}/facets                        → ["...", ...]
//
// Identical requests in flight at the same time share one round trip.
type Source struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
	delays  []time.Duration
	limiter *rate.Limiter
	logger  *slog.Logger
	group   singleflight.Group
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithHTTPClient replaces the HTTP client. The client's own timeout is kept.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// WithRetryDelays sets the waits between attempts of a retryable request.
// An empty slice disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *Source) {
		s.delays = delays
	}
}

// WithRateLimit limits requests to rps per second with no bursting.
// A non-positive rps disables the limit.
func WithRateLimit(rps float64) Option {
	return func(s *Source) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// NewSource creates a Source for the endpoint at baseURL.
func NewSource(baseURL string, opts ...Option) (*Source, error) {
	base, err := url.Parse(baseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, catalog.Errorf(catalog.EINVALID, "invalid listing endpoint %q", baseURL)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")

	s := &Source{
		base:    base,
		timeout: DefaultTimeout,
		delays:  DefaultRetryDelays(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = &http.Client{
			Timeout: s.timeout,
		}
	}

	return s, nil
}

// List requests one page of entries from the endpoint.
func (s *Source) List(ctx context.Context, params catalog.ListParams) (*catalog.ResultSet, error) {
	if err := params.Kind.Validate(); err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("q", params.Query)
	if params.Facet != "" {
		values.Set("facet", params.Facet)
	}
	values.Set("page", strconv.Itoa(max(params.Page, 1)))
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Sort != "" {
		values.Set("sort", string(params.Sort))
	}

	body, err := s.get(ctx, s.endpoint(string(params.Kind)), values)
	if err != nil {
		return nil, err
	}

	var rs catalog.ResultSet
	if err := json.Unmarshal(body, &rs); err != nil {
		return nil, fmt.Errorf("decode listing response: %w", err)
	}
	if rs.Items == nil {
		rs.Items = []*catalog.Entry{}
	}
	for _, e := range rs.Items {
		if e.Kind == "" {
			e.Kind = params.Kind
		}
	}
	return &rs, nil
}

// ListFacetValues requests the facet values of kind from the endpoint.
func (s *Source) ListFacetValues(ctx context.Context, kind catalog.Kind) ([]string, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	body, err := s.get(ctx, s.endpoint(string(kind), "facets"), nil)
	if err != nil {
		return nil, err
	}

	var values []string
	if err := json.Unmarshal(body, &values); err != nil {
		return nil, fmt.Errorf("decode facets response: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func (s *Source) endpoint(segments ...string) *url.URL {
	u := *s.base
	u.Path = s.base.Path + "/" + strings.Join(segments, "/")
	return &u
}

// get fetches u with query values. Concurrent calls for the same URL share
// a single request; a caller whose context ends stops waiting but the shared
// request completes for the others.
func (s *Source) get(ctx context.Context, u *url.URL, values url.Values) ([]byte, error) {
	if values != nil {
		u.RawQuery = values.Encode()
	}
	key := u.String()

	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.fetchWithRetry(detached, key)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// fetchWithRetry retries unavailable responses with the configured delays.
func (s *Source) fetchWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	maxAttempts := len(s.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		body, err := s.fetch(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if catalog.ErrorCode(err) != catalog.EUNAVAILABLE || attempt >= maxAttempts-1 {
			break
		}

		s.logger.Debug("retry listing request", "url", rawURL, "attempt", attempt+2, "err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delays[attempt]):
		}
	}

	return nil, lastErr
}

func (s *Source) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, catalog.Errorf(catalog.EUNAVAILABLE, "listing endpoint unreachable: %v", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, err
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

// statusError maps a non-2xx status to an application error.
func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return catalog.Errorf(catalog.ENOTFOUND, "Listing not found.")
	case code == http.StatusTooManyRequests || code >= 500:
		return catalog.Errorf(catalog.EUNAVAILABLE, "listing endpoint returned HTTP %d", code)
	default:
		return catalog.Errorf(catalog.EINVALID, "Listing request rejected (HTTP %d).", code)
	}
}
