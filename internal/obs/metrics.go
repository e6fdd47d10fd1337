package obs

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec
	CacheEvictionsTotal prometheus.Counter
	InvalidationsTotal  *prometheus.CounterVec

	FetchesTotal       *prometheus.CounterVec
	FetchDuration      *prometheus.HistogramVec
	FetchDiscardsTotal *prometheus.CounterVec

	MutationsTotal      *prometheus.CounterVec
	RateLimitDropsTotal *prometheus.CounterVec
	DebounceEmitsTotal  *prometheus.CounterVec
	SessionsActive      prometheus.Gauge

	Registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		CacheHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "query_cache_hits_total",
			Help: "Reads served from a fresh cache entry",
		}, []string{"domain"}),
		CacheMissesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "query_cache_misses_total",
			Help: "Reads that started or joined a fetch",
		}, []string{"domain"}),
		CacheEvictionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "query_cache_evictions_total",
			Help: "Entries removed by garbage collection",
		}),
		InvalidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "query_cache_invalidations_total",
			Help: "Entries marked stale by mutations",
		}, []string{"domain"}),
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "query_fetches_total",
			Help: "Producer calls by outcome",
		}, []string{"domain", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "query_fetch_duration_seconds",
			Help:    "Producer call latencies",
			Buckets: prometheus.DefBuckets,
		}, []string{"domain"}),
		FetchDiscardsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "query_fetch_discards_total",
			Help: "Producer results dropped because a newer generation superseded them",
		}, []string{"domain"}),
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mutations_total",
			Help: "Mutations by outcome",
		}, []string{"domain", "outcome"}),
		RateLimitDropsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ratelimit_drops_total",
			Help: "Requests dropped due to rate limiting",
		}, []string{"route"}),
		DebounceEmitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "search_debounce_emits_total",
			Help: "Search parameter changes that settled and reached the orchestrator",
		}, []string{"domain"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "search_sessions_active",
			Help: "Open search sessions",
		}),
		Registry: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CacheEvictionsTotal,
		m.InvalidationsTotal,
		m.FetchesTotal,
		m.FetchDuration,
		m.FetchDiscardsTotal,
		m.MutationsTotal,
		m.RateLimitDropsTotal,
		m.DebounceEmitsTotal,
		m.SessionsActive,
	)

	return m
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}

func (m *Metrics) CacheHit(domain string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(domain).Inc()
}

func (m *Metrics) CacheMiss(domain string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(domain).Inc()
}

func (m *Metrics) CacheEvicted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CacheEvictionsTotal.Add(float64(n))
}

func (m *Metrics) Invalidated(domain string, n int) {
	if m == nil {
		return
	}
	m.InvalidationsTotal.WithLabelValues(domain).Add(float64(n))
}

// FetchDone records a producer call. outcome is "success" or "error".
func (m *Metrics) FetchDone(domain, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(domain, outcome).Inc()
	m.FetchDuration.WithLabelValues(domain).Observe(d.Seconds())
}

func (m *Metrics) FetchDiscarded(domain string) {
	if m == nil {
		return
	}
	m.FetchDiscardsTotal.WithLabelValues(domain).Inc()
}

func (m *Metrics) Mutation(domain, outcome string) {
	if m == nil {
		return
	}
	m.MutationsTotal.WithLabelValues(domain, outcome).Inc()
}

func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.RateLimitDropsTotal.WithLabelValues(route).Inc()
}

func (m *Metrics) DebounceEmitted(domain string) {
	if m == nil {
		return
	}
	m.DebounceEmitsTotal.WithLabelValues(domain).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.SessionsActive.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.SessionsActive.Dec()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}
