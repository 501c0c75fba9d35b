// Package cache stores registry responses so repeated lookups of the same
// package do not hit the network.
//
// Three backends implement [Cache]:
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: never stores anything (--no-cache, tests)
//
// Keys should be built with a [Keyer] so that entries from different
// registries never collide.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by backends that were used after Close.
var ErrClosed = errors.New("cache closed")

// Cache is a byte-oriented key/value store with per-entry expiration.
//
// Get reports a miss with (nil, false, nil); expired entries are misses.
// A ttl of 0 passed to Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
