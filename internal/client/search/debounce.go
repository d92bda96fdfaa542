// Package search turns keystrokes into debounced catalog queries: at most
// one request per settled pause, and never a stale response on screen.
package search

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

// DefaultDelay is the pause after the last change before a query is sent.
const DefaultDelay = 300 * time.Millisecond

// SearchFunc runs one catalog query.
type SearchFunc func(ctx context.Context, query string) ([]models.BookSummary, error)

// Timer is the handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it through
// realAfterFunc; tests inject a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Update is delivered to observers whenever the visible results change.
type Update struct {
	Query   string
	Results []models.BookSummary
	Err     error
}

type Option func(*Debouncer)

func WithAfterFunc(fn AfterFunc) Option {
	return func(d *Debouncer) { d.afterFunc = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(d *Debouncer) { d.logger = l }
}

// Debouncer holds the text and results of one search screen. It is safe
// for concurrent use; the timer callback runs on its own goroutine.
type Debouncer struct {
	search    SearchFunc
	delay     time.Duration
	afterFunc AfterFunc
	logger    logging.Logger

	mu        sync.Mutex
	text      string
	results   []models.BookSummary
	err       error
	gen       uint64
	visible   bool
	timer     Timer
	cancel    context.CancelFunc
	observers []func(Update)
}

// New returns a visible debouncer. A non-positive delay means DefaultDelay.
func New(search SearchFunc, delay time.Duration, opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{
		search:    search,
		delay:     delay,
		afterFunc: realAfterFunc,
		logger:    logging.Discard(),
		visible:   true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Change records new text. Blank text clears the results at once; any
// other text restarts the delay. Changes while hidden are dropped.
func (d *Debouncer) Change(text string) {
	d.mu.Lock()
	if !d.visible {
		d.mu.Unlock()
		return
	}
	d.text = text
	d.invalidateLocked()

	if strings.TrimSpace(text) == "" {
		d.results = nil
		d.err = nil
		upd := d.updateLocked()
		d.mu.Unlock()
		d.publish(upd)
		return
	}

	gen := d.gen
	d.timer = d.afterFunc(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// invalidateLocked stops the pending timer, cancels the in-flight request
// and bumps the generation so late responses are dropped.
func (d *Debouncer) invalidateLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.visible {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	query := strings.TrimSpace(d.text)
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	d.logger.Debug(ctx, "search fired", "query", query)
	results, err := d.search(ctx, query)
	cancel()

	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		d.logger.Debug(ctx, "dropping stale search response", "query", query)
		return
	}
	d.cancel = nil
	if err != nil {
		d.err = err
		d.logger.Warn(ctx, "search failed", "query", query, "error", err)
	} else {
		d.results = results
		d.err = nil
	}
	upd := d.updateLocked()
	d.mu.Unlock()

	d.publish(upd)
}

// Hide marks the screen as not visible: the pending timer and any
// in-flight request are cancelled.
func (d *Debouncer) Hide() {
	d.mu.Lock()
	d.visible = false
	d.invalidateLocked()
	d.mu.Unlock()
}

// Show marks the screen visible again and resets text and results.
func (d *Debouncer) Show() {
	d.mu.Lock()
	d.visible = true
	d.invalidateLocked()
	d.text = ""
	d.results = nil
	d.err = nil
	d.mu.Unlock()
}

// Text returns the current text.
func (d *Debouncer) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// Results returns a copy of the visible results.
func (d *Debouncer) Results() []models.BookSummary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.BookSummary(nil), d.results...)
}

// Err returns the error of the last applied search, if it failed.
func (d *Debouncer) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// OnUpdate registers fn to receive every applied result change.
func (d *Debouncer) OnUpdate(fn func(Update)) {
	d.mu.Lock()
	d.observers = append(d.observers, fn)
	d.mu.Unlock()
}

func (d *Debouncer) updateLocked() Update {
	return Update{
		Query:   strings.TrimSpace(d.text),
		Results: append([]models.BookSummary(nil), d.results...),
		Err:     d.err,
	}
}

func (d *Debouncer) publish(u Update) {
	d.mu.Lock()
	fns := slices.Clone(d.observers)
	d.mu.Unlock()
	for _, fn := range fns {
		fn(u)
	}
}
