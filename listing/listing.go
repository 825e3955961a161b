// Package listing drives the query lifecycle of a catalog listing page.
//
// A Controller ties the debounced text input, the query state store, the
// search history and a data source together:
//
//	Type → debounce → querystate.Write → Source.List → Paginate → View
//
// Every fetch is tagged with the query snapshot that started it. A result is
// applied only while that snapshot is still the current query and no newer
// fetch has started, so the last settled query always wins regardless of the
// order responses arrive in.
package listing

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/catalog"
	"github.com/fwojciec/catalog/debounce"
	"github.com/fwojciec/catalog/history"
	"github.com/fwojciec/catalog/querystate"
)

// DefaultDelay is the settle delay used when Config.Delay is zero.
const DefaultDelay = 300 * time.Millisecond

// FetchFailureMessage is shown when a data source fails without a more
// specific user-facing message.
const FetchFailureMessage = "Unable to load results. Please try again."

// Phase is the lifecycle state of the current query.
type Phase int

// Phase constants.
const (
	PhaseIdle Phase = iota
	PhaseEditing
	PhaseSettled
	PhaseFetching
	PhaseDisplayed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEditing:
		return "editing"
	case PhaseSettled:
		return "settled"
	case PhaseFetching:
		return "fetching"
	case PhaseDisplayed:
		return "displayed"
	default:
		return "unknown"
	}
}

// Config configures a Controller.
type Config struct {
	Kind    catalog.Kind
	Source  catalog.Source
	State   *querystate.Store
	Facets  catalog.FacetSource // optional
	History *history.Store      // optional
	Limit   int
	Sort    catalog.SortOrder
	Delay   time.Duration
	Logger  *slog.Logger

	// AfterFunc replaces the debounce timer factory.
	AfterFunc debounce.AfterFunc
}

// View is an immutable snapshot of the presentation state.
type View struct {
	Phase     Phase
	Query     catalog.SearchQuery
	Input     string // text as typed, possibly not settled yet
	Results   catalog.ResultPage
	Facets    []string
	History   []string
	Err       error
	Message   string // user-visible error message
	Discarded int    // stale responses ignored so far
}

// Controller runs the query lifecycle of one listing page.
type Controller struct {
	kind    catalog.Kind
	source  catalog.Source
	facets  catalog.FacetSource
	state   *querystate.Store
	history *history.Store
	limit   int
	sort    catalog.SortOrder
	logger  *slog.Logger

	debouncer   *debounce.Debouncer[string]
	unsubscribe func()

	ctx    context.Context
	cancel context.CancelFunc

	// notifyMu delivers snapshots to listeners in the order they were taken.
	notifyMu sync.Mutex

	mu          sync.Mutex
	view        View
	seq         uint64
	cancelFetch context.CancelFunc
	inflight    int
	resolved    *sync.Cond // signaled on c.mu when inflight drops to zero
	closed      bool
	listeners   []func(View)
}

// New creates a Controller. The initial query is read from cfg.State and
// the history of cfg.Kind is loaded; no fetch starts until Mount.
func New(ctx context.Context, cfg Config) (*Controller, error) {
	if cfg.Source == nil {
		return nil, catalog.Errorf(catalog.EINVALID, "listing source required")
	}
	if cfg.State == nil {
		return nil, catalog.Errorf(catalog.EINVALID, "listing query state required")
	}
	if err := cfg.Kind.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		kind:    cfg.Kind,
		source:  cfg.Source,
		facets:  cfg.Facets,
		state:   cfg.State,
		history: cfg.History,
		limit:   cfg.Limit,
		sort:    cfg.Sort,
		logger:  cfg.Logger,
	}
	if c.limit <= 0 {
		c.limit = catalog.DefaultLimit
	}
	if c.sort == "" {
		c.sort = catalog.SortByName
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.resolved = sync.NewCond(&c.mu)

	q := c.state.Read()
	c.view = View{
		Phase:   PhaseIdle,
		Query:   q,
		Input:   q.Text,
		Results: catalog.ResultPage{Page: q.Page, Limit: c.limit, TotalPages: 1},
		History: c.loadHistory(),
	}

	c.debouncer = debounce.New(delay, c.settle, debounce.WithAfterFunc(cfg.AfterFunc))
	c.unsubscribe = c.state.Subscribe(c.fetch)
	return c, nil
}

// Mount starts the first fetch for the current query.
func (c *Controller) Mount() {
	c.fetch(c.state.Read())
}

// Type records a keystroke. The text settles after the debounce delay.
func (c *Controller) Type(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.view.Input = text
	c.view.Phase = PhaseEditing
	c.mu.Unlock()

	c.changed()
	c.debouncer.Observe(text)
}

// Submit settles pending text immediately, as when the user presses Enter.
func (c *Controller) Submit() {
	c.debouncer.Flush()
}

// SetFacet selects a facet value. An empty value clears the facet.
func (c *Controller) SetFacet(facet string) {
	c.write(catalog.SetFacet(facet))
}

// SetPage moves to page.
func (c *Controller) SetPage(page int) {
	c.write(catalog.SetPage(page))
}

// SetView switches the view mode.
func (c *Controller) SetView(view catalog.ViewMode) {
	c.write(catalog.SetView(view))
}

// Refresh fetches the current query again.
func (c *Controller) Refresh() {
	c.fetch(c.state.Read())
}

// ClearHistory removes the recent searches of the listing.
func (c *Controller) ClearHistory() error {
	if c.history == nil {
		return nil
	}
	if err := c.history.Clear(c.ctx, string(c.kind)); err != nil {
		return err
	}
	c.mu.Lock()
	c.view.History = []string{}
	c.mu.Unlock()
	c.changed()
	return nil
}

// LoadFacets loads the facet values of the listing. Without a facet source,
// or when it fails, the values are derived from the displayed page.
func (c *Controller) LoadFacets(ctx context.Context) []string {
	var values []string
	loaded := false
	if c.facets != nil {
		v, err := c.facets.ListFacetValues(ctx, c.kind)
		if err != nil {
			c.logger.Warn("facet values unavailable", "kind", c.kind, "err", err)
		} else {
			values, loaded = v, true
		}
	}

	c.mu.Lock()
	if !loaded {
		values = catalog.FacetValues(c.view.Results.Items)
	}
	if values == nil {
		values = []string{}
	}
	c.view.Facets = values
	c.mu.Unlock()

	c.changed()
	return slices.Clone(values)
}

// Snapshot returns a copy of the current presentation state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// OnChange registers fn to be called with a snapshot after every change.
// fn must not call back into the Controller.
func (c *Controller) OnChange(fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Wait blocks until no fetch is in flight, including fetches started while
// waiting, such as a page correction. It may be called concurrently with
// any other method.
func (c *Controller) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.inflight > 0 {
		c.resolved.Wait()
	}
}

// Close stops the debouncer and detaches from the query state. Results of
// fetches still in flight are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.debouncer.Stop()
	c.unsubscribe()
	c.cancel()
}

func (c *Controller) write(a catalog.Action) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}
	c.state.Write(a)
}

// settle receives debounced text.
func (c *Controller) settle(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.view.Phase = PhaseSettled
	c.mu.Unlock()

	// A changed query fetches through the state subscription.
	if _, changed := c.state.Write(catalog.SetText(text)); !changed {
		c.mu.Lock()
		if c.view.Phase == PhaseSettled {
			c.view.Phase = PhaseDisplayed
		}
		c.mu.Unlock()
	}

	c.recordHistory(text)
	c.changed()
}

func (c *Controller) recordHistory(text string) {
	if c.history == nil || text == "" {
		return
	}
	if err := c.history.Record(c.ctx, string(c.kind), text); err != nil {
		c.logger.Warn("history not recorded", "kind", c.kind, "err", err)
		return
	}
	terms := c.loadHistory()

	c.mu.Lock()
	c.view.History = terms
	c.mu.Unlock()
}

func (c *Controller) loadHistory() []string {
	if c.history == nil {
		return []string{}
	}
	return c.history.Load(c.ctx, string(c.kind))
}

// fetch starts a fetch for q tagged with a new sequence number. A previous
// fetch still in flight is cancelled best-effort; its result is ignored
// either way.
func (c *Controller) fetch(q catalog.SearchQuery) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelFetch = cancel
	c.view.Phase = PhaseFetching
	c.view.Query = q
	c.inflight++
	c.mu.Unlock()

	c.changed()

	params := q.ListParams(c.kind, c.limit, c.sort)
	go func() {
		defer c.done()
		defer cancel()

		rs, err := c.source.List(ctx, params)
		c.resolve(seq, q, rs, err)
	}()
}

func (c *Controller) done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if c.inflight == 0 {
		c.resolved.Broadcast()
	}
}

// resolve applies the outcome of fetch seq for snapshot q.
func (c *Controller) resolve(seq uint64, q catalog.SearchQuery, rs *catalog.ResultSet, err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if seq != c.seq || q != c.state.Read() {
		c.view.Discarded++
		c.mu.Unlock()
		c.logger.Debug("stale response discarded", "kind", c.kind, "query", q.Encode())
		return
	}

	if err != nil {
		c.view.Results = catalog.ResultPage{Items: []*catalog.Entry{}, Page: q.Page, Limit: c.limit, TotalPages: 1}
		c.view.Err = err
		c.view.Message = failureMessage(err)
		c.view.Phase = c.displayedPhase()
		c.mu.Unlock()

		c.logger.Warn("fetch failed", "kind", c.kind, "query", q.Encode(), "err", err)
		c.changed()
		return
	}
	if rs == nil {
		rs = &catalog.ResultSet{}
	}

	info := catalog.Paginate(rs.Total, c.limit, q.Page)
	if info.Page != q.Page {
		c.mu.Unlock()

		// The corrected page re-fetches through the state subscription. A
		// query changed since the check above keeps its own page.
		c.logger.Debug("page clamped", "kind", c.kind, "requested", q.Page, "page", info.Page)
		if _, ok := c.state.CompareAndWrite(q, catalog.SetPage(info.Page)); !ok {
			c.mu.Lock()
			c.view.Discarded++
			c.mu.Unlock()
		}
		return
	}

	items := rs.Items
	if items == nil {
		items = []*catalog.Entry{}
	}
	c.view.Results = catalog.ResultPage{
		Items:      items,
		Total:      rs.Total,
		Page:       info.Page,
		Limit:      c.limit,
		TotalPages: info.TotalPages,
	}
	c.view.Err = nil
	c.view.Message = ""
	c.view.Phase = c.displayedPhase()
	c.mu.Unlock()

	c.changed()
}

// displayedPhase returns PhaseDisplayed unless newer text is still
// settling, in which case the user is editing again.
func (c *Controller) displayedPhase() Phase {
	if _, pending := c.debouncer.Pending(); pending {
		return PhaseEditing
	}
	return PhaseDisplayed
}

func (c *Controller) changed() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	listeners := slices.Clone(c.listeners)
	v := c.snapshot()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

// snapshot copies the view. c.mu must be held.
func (c *Controller) snapshot() View {
	v := c.view
	v.Results.Items = slices.Clone(c.view.Results.Items)
	v.Facets = slices.Clone(c.view.Facets)
	v.History = slices.Clone(c.view.History)
	return v
}

// failureMessage returns the user-visible message for a fetch error.
func failureMessage(err error) string {
	switch catalog.ErrorCode(err) {
	case catalog.EINVALID, catalog.ENOTFOUND:
		return catalog.ErrorMessage(err)
	default:
		return FetchFailureMessage
	}
}
