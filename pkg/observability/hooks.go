// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through hook interfaces with no-op defaults; the
// binary registers real implementations at startup. This keeps pkg/registry
// and pkg/cache free of any metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLookupHooks(myLookupHooks{})
//	    observability.SetHTTPHooks(myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Lookup().OnLookupStart(ctx, pkg)
//	// ... fetch ...
//	observability.Lookup().OnLookupComplete(ctx, pkg, observability.OutcomeReady, duration, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// Lookup outcomes reported by [LookupHooks.OnLookupComplete].
const (
	OutcomeReady      = "ready"      // author record resolved
	OutcomeNoData     = "no_data"    // registry answered with a non-success status
	OutcomeFailed     = "failed"     // transport or parse failure
	OutcomeSuperseded = "superseded" // a newer identifier replaced this request
)

// =============================================================================
// Lookup Hooks
// =============================================================================

// LookupHooks receives events from registry author lookups.
type LookupHooks interface {
	OnLookupStart(ctx context.Context, pkg string)
	OnLookupComplete(ctx context.Context, pkg, outcome string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLookupHooks is a no-op implementation of LookupHooks.
type NoopLookupHooks struct{}

func (NoopLookupHooks) OnLookupStart(context.Context, string)                                  {}
func (NoopLookupHooks) OnLookupComplete(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	lookupHooks LookupHooks = NoopLookupHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetLookupHooks registers custom lookup hooks.
// This should be called once at application startup.
func SetLookupHooks(h LookupHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		lookupHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Lookup returns the registered lookup hooks.
func Lookup() LookupHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return lookupHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	lookupHooks = NoopLookupHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
