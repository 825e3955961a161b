// Package debounce delays propagation of a rapidly changing value until it
// stops changing for a settle delay.
package debounce

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer used by the Debouncer.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d. It matches time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type config struct {
	afterFunc AfterFunc
}

// Option configures a Debouncer.
type Option func(*config)

// WithAfterFunc replaces the timer factory. Tests use it to fire timers
// without waiting on the wall clock.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.afterFunc = fn
		}
	}
}

// Debouncer emits the last observed value once no new value has been
// observed for the settle delay. Intermediate values are dropped.
// It is safe for concurrent use.
type Debouncer[T any] struct {
	delay     time.Duration
	emit      func(T)
	afterFunc AfterFunc

	// emitMu serializes emissions with Stop so nothing is emitted after
	// Stop returns.
	emitMu sync.Mutex

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending T
	has     bool
	stopped bool
}

// New returns a Debouncer that calls emit with settled values.
// emit runs on the timer goroutine and must not call Stop or Flush.
func New[T any](delay time.Duration, emit func(T), opts ...Option) *Debouncer[T] {
	cfg := config{afterFunc: realAfterFunc}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Debouncer[T]{
		delay:     delay,
		emit:      emit,
		afterFunc: cfg.afterFunc,
	}
}

// Observe records v as the pending value and restarts the settle timer.
// Observe is a no-op after Stop.
func (d *Debouncer[T]) Observe(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.pending = v
	d.has = true
	d.timer = d.afterFunc(d.delay, func() { d.fire(gen) })
}

// Flush emits the pending value immediately, if any, and reports whether
// a value was emitted.
func (d *Debouncer[T]) Flush() bool {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	v, ok := d.take(0, false)
	if !ok {
		return false
	}
	d.emit(v)
	return true
}

// Pending returns the value waiting to settle.
func (d *Debouncer[T]) Pending() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.has
}

// Stop cancels any pending timer. No value is emitted after Stop returns;
// an emission already in progress is waited for.
func (d *Debouncer[T]) Stop() {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.pending = zero
	d.has = false
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	v, ok := d.take(gen, true)
	if !ok {
		return
	}
	d.emit(v)
}

// take removes the pending value. When checkGen is set the value is only
// taken if no newer Observe superseded the timer of generation gen.
func (d *Debouncer[T]) take(gen uint64, checkGen bool) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	if d.stopped || !d.has || (checkGen && gen != d.gen) {
		return zero, false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.pending
	d.pending = zero
	d.has = false
	return v, true
}
