package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/libpanel/pkg/buildinfo"
	"github.com/matzehuels/libpanel/pkg/cache"
	"github.com/matzehuels/libpanel/pkg/errors"
	"github.com/matzehuels/libpanel/pkg/observability"
)

const (
	// DefaultBaseURL is the public npm registry.
	DefaultBaseURL = "https://registry.npmjs.org"

	// DefaultCacheTTL is how long registry answers are reused.
	DefaultCacheTTL = 24 * time.Hour

	httpTimeout = 10 * time.Second

	// maxBodySize caps how much of a registry document is read.
	maxBodySize = 16 << 20
)

// Fetcher resolves the latest registry record of a package.
//
// A nil record with a nil error means the registry had nothing to say
// (non-success status). refresh bypasses any cache.
type Fetcher interface {
	FetchLatest(ctx context.Context, pkg string, refresh bool) (*Record, error)
}

// Client fetches "latest" documents from an npm-compatible registry.
// It is safe for concurrent use; concurrent fetches of the same package
// share one request.
type Client struct {
	http    *http.Client
	baseURL string
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	headers map[string]string
	logger  *log.Logger
	group   singleflight.Group
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at another registry. Trailing slashes are
// ignored.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the default HTTP client (10s timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCache enables response caching with the given TTL.
func WithCache(cc cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if cc != nil {
			c.cache = cc
			c.ttl = ttl
		}
	}
}

// WithHeaders adds headers to every request. They override the defaults.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client for the public npm registry with caching
// disabled, then applies opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: DefaultBaseURL,
		cache:   cache.NewNullCache(),
		ttl:     DefaultCacheTTL,
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.keyer = cache.KeyerFor(c.baseURL)
	return c
}

// BaseURL returns the registry base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// LatestURL returns the URL of the "latest" document for pkg. Scoped names
// keep their "@" and have the "/" escaped.
func (c *Client) LatestURL(pkg string) string {
	return c.baseURL + "/" + url.PathEscape(pkg) + "/latest"
}

// FetchLatest returns the latest record of pkg.
//
// Non-success statuses and names the registry cannot hold yield (nil, nil).
// Transport failures return an error coded TRANSPORT_FAILURE and undecodable
// bodies PARSE_FAILURE.
func (c *Client) FetchLatest(ctx context.Context, pkg string, refresh bool) (*Record, error) {
	if err := errors.ValidatePackageName(pkg); err != nil {
		c.logger.Debug("skipping lookup", "package", pkg, "reason", err)
		return nil, nil
	}
	key := c.keyer.RegistryKey("latest", pkg)

	if !refresh {
		if rec, ok := c.fromCache(ctx, key); ok {
			return rec, nil
		}
	}

	// The shared fetch must outlive any single caller so that a superseded
	// caller does not fail the others waiting on the same key.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		res, err := c.fetch(shared, pkg)
		if err != nil {
			return nil, err
		}
		if res.cacheable {
			c.toCache(shared, key, res.record)
		}
		return res.record, nil
	})

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeTransport, ctx.Err(), "fetch %s", pkg)
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		rec, _ := r.Val.(*Record)
		return rec, nil
	}
}

type fetchResult struct {
	record    *Record
	cacheable bool
}

func (c *Client) fetch(ctx context.Context, pkg string) (fetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.LatestURL(pkg), nil)
	if err != nil {
		return fetchResult{}, errors.Wrap(errors.ErrCodeInternal, err, "build request for %s", pkg)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.EscapedPath()
	observability.HTTP().OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, host, path, err)
		return fetchResult{}, errors.Wrap(errors.ErrCodeTransport, err, "fetch %s", pkg)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	observability.HTTP().OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return fetchResult{}, errors.Wrap(errors.ErrCodeTransport, err, "read %s", pkg)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("registry has no data", "pkg", pkg, "status", resp.StatusCode)
		return fetchResult{cacheable: isDefinitiveMiss(resp.StatusCode)}, nil
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return fetchResult{}, errors.Wrap(errors.ErrCodeParse, err, "decode registry record for %s", pkg)
	}
	c.logger.Debug("registry record", "pkg", pkg, "version", rec.Version, "author", rec.AuthorName())
	return fetchResult{record: &rec, cacheable: true}, nil
}

// isDefinitiveMiss reports whether a non-success status says the package
// does not exist, as opposed to a transient server problem.
func isDefinitiveMiss(status int) bool {
	return status == http.StatusNotFound || status == http.StatusGone
}

// cachedRecord distinguishes a cached "no data" answer from a cache miss.
type cachedRecord struct {
	Record *Record `json:"record"`
}

func (c *Client) fromCache(ctx context.Context, key string) (*Record, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "registry")
		return nil, false
	}
	var entry cachedRecord
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Debug("dropping corrupt cache entry", "key", key, "err", err)
		_ = c.cache.Delete(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "registry")
	return entry.Record, true
}

func (c *Client) toCache(ctx context.Context, key string, rec *Record) {
	data, err := json.Marshal(cachedRecord{Record: rec})
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "err", errors.Wrap(errors.ErrCodeCache, err, "set %s", key))
		return
	}
	observability.Cache().OnCacheSet(ctx, "registry", len(data))
}

var _ Fetcher = (*Client)(nil)
