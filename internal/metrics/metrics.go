// Package metrics exports libpanel's observability hooks as Prometheus
// metrics.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/libpanel/pkg/observability"
)

const namespace = "libpanel"

// Collector implements the lookup, cache and HTTP hooks.
type Collector struct {
	lookupsTotal   *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	lookupsActive  prometheus.Gauge

	cacheEvents *prometheus.CounterVec
	cacheBytes  prometheus.Counter

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

// New creates a Collector whose metrics are registered with reg.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		lookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "author_lookups_total",
			Help:      "Author lookups by outcome.",
		}, []string{"outcome"}),
		lookupDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "author_lookup_duration_seconds",
			Help:      "Author lookup latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		lookupsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "author_lookups_in_flight",
			Help:      "Author lookups currently waiting on the registry.",
		}),
		cacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Registry cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the registry cache.",
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_requests_total",
			Help:      "Registry HTTP responses by status code.",
		}, []string{"host", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "registry_request_duration_seconds",
			Help:      "Registry HTTP latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
		requestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_request_errors_total",
			Help:      "Registry requests that failed before a response.",
		}, []string{"host"}),
	}
}

// Install registers c as the process-wide observability hooks.
func (c *Collector) Install() {
	observability.SetLookupHooks(c)
	observability.SetCacheHooks(c)
	observability.SetHTTPHooks(c)
}

func (c *Collector) OnLookupStart(context.Context, string) {
	c.lookupsActive.Inc()
}

func (c *Collector) OnLookupComplete(_ context.Context, _ string, outcome string, d time.Duration, _ error) {
	c.lookupsActive.Dec()
	c.lookupsTotal.WithLabelValues(outcome).Inc()
	c.lookupDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (c *Collector) OnCacheHit(_ context.Context, keyType string) {
	c.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (c *Collector) OnCacheMiss(_ context.Context, keyType string) {
	c.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (c *Collector) OnCacheSet(_ context.Context, keyType string, size int) {
	c.cacheEvents.WithLabelValues(keyType, "set").Inc()
	c.cacheBytes.Add(float64(size))
}

func (c *Collector) OnRequest(context.Context, string, string, string) {}

func (c *Collector) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	c.requestsTotal.WithLabelValues(host, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (c *Collector) OnError(_ context.Context, _, host, _ string, _ error) {
	c.requestErrors.WithLabelValues(host).Inc()
}

var (
	_ observability.LookupHooks = (*Collector)(nil)
	_ observability.CacheHooks  = (*Collector)(nil)
	_ observability.HTTPHooks   = (*Collector)(nil)
)
