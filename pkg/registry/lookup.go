package registry

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/libpanel/pkg/observability"
)

// Lookup tracks the author of one package at a time. Requesting a new
// package supersedes the previous one: its result is discarded even if it
// arrives later.
type Lookup struct {
	fetcher Fetcher
	notify  func(State)
	refresh bool
	logger  *log.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
	closed bool
}

// LookupOption configures a [Lookup].
type LookupOption func(*Lookup)

// WithNotify registers fn to receive every completed state. fn is called
// from the fetching goroutine without any lock held, and never for a
// superseded request.
func WithNotify(fn func(State)) LookupOption {
	return func(l *Lookup) { l.notify = fn }
}

// WithRefresh makes every fetch bypass the registry cache.
func WithRefresh(refresh bool) LookupOption {
	return func(l *Lookup) { l.refresh = refresh }
}

// WithLookupLogger sets the logger used for debug output.
func WithLookupLogger(logger *log.Logger) LookupOption {
	return func(l *Lookup) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLookup creates an idle Lookup backed by f.
func NewLookup(f Fetcher, opts ...LookupOption) *Lookup {
	l := &Lookup{
		fetcher: f,
		notify:  func(State) {},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Request binds the lookup to pkg and returns the resulting state.
//
// If pkg is already pending or ready nothing happens. Otherwise any
// in-flight fetch is cancelled and a new one starts; the returned state is
// Pending. Request does not call the notify callback itself.
func (l *Lookup) Request(ctx context.Context, pkg string) State {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return l.state
	}
	if l.state.ID == pkg && (l.state.Status == StatusPending || l.state.Status == StatusReady) {
		return l.state
	}

	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.state = State{Status: StatusPending, ID: pkg}

	go l.run(fetchCtx, l.gen, pkg, cancel)
	return l.state
}

func (l *Lookup) run(ctx context.Context, gen uint64, pkg string, cancel context.CancelFunc) {
	defer cancel()

	observability.Lookup().OnLookupStart(ctx, pkg)
	start := time.Now()
	rec, err := l.fetcher.FetchLatest(ctx, pkg, l.refresh)

	l.mu.Lock()
	if gen != l.gen || l.closed {
		l.mu.Unlock()
		l.logger.Debug("discarding superseded lookup", "pkg", pkg)
		observability.Lookup().OnLookupComplete(ctx, pkg, observability.OutcomeSuperseded, time.Since(start), err)
		return
	}
	st := State{Status: StatusReady, ID: pkg, Record: rec}
	outcome := observability.OutcomeReady
	switch {
	case err != nil:
		st = State{Status: StatusFailed, ID: pkg, Err: err}
		outcome = observability.OutcomeFailed
	case rec == nil:
		outcome = observability.OutcomeNoData
	}
	l.state = st
	l.cancel = nil
	notify := l.notify
	l.mu.Unlock()

	if err != nil {
		l.logger.Debug("author lookup failed", "pkg", pkg, "err", err)
	}
	observability.Lookup().OnLookupComplete(ctx, pkg, outcome, time.Since(start), err)
	notify(st)
}

// State returns the current state.
func (l *Lookup) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Close cancels any in-flight fetch. Fetches completing after Close are
// discarded.
func (l *Lookup) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Resolve fetches the author of pkg synchronously.
func Resolve(ctx context.Context, f Fetcher, pkg string, refresh bool) State {
	observability.Lookup().OnLookupStart(ctx, pkg)
	start := time.Now()
	rec, err := f.FetchLatest(ctx, pkg, refresh)

	st := State{Status: StatusReady, ID: pkg, Record: rec}
	outcome := observability.OutcomeReady
	switch {
	case err != nil:
		st = State{Status: StatusFailed, ID: pkg, Err: err}
		outcome = observability.OutcomeFailed
	case rec == nil:
		outcome = observability.OutcomeNoData
	}
	observability.Lookup().OnLookupComplete(ctx, pkg, outcome, time.Since(start), err)
	return st
}
