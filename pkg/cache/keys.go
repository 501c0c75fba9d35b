package cache

import (
	"net/url"
	"strings"
)

// Keyer builds cache keys for registry responses.
type Keyer interface {
	// RegistryKey returns the key for a document of kind (e.g. "latest")
	// fetched for pkg.
	RegistryKey(kind, pkg string) string
}

// DefaultKeyer produces keys of the form "npm:<kind>:<pkg>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the keyer used for the public npm registry.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RegistryKey implements [Keyer].
func (DefaultKeyer) RegistryKey(kind, pkg string) string {
	return "npm:" + kind + ":" + pkg
}

// ScopedKeyer wraps a Keyer with a prefix. Use it when a non-default
// registry shares a cache with the public one.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "registry.example.com:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RegistryKey implements [Keyer].
func (k *ScopedKeyer) RegistryKey(kind, pkg string) string {
	return k.prefix + k.inner.RegistryKey(kind, pkg)
}

// KeyerFor returns the keyer for a registry base URL. The public npm
// registry gets the default keyer; any other host is scoped by its host name.
func KeyerFor(baseURL string) Keyer {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" || strings.EqualFold(u.Host, "registry.npmjs.org") {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(NewDefaultKeyer(), strings.ToLower(u.Host)+":")
}
