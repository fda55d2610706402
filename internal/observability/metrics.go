package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Watch for: p95/p99 latency increases.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation, capacity limits.
	HTTPRequestsInFlight prometheus.Gauge

	// Cache hits/misses per payload namespace. Hit rate = hits/(hits+misses).
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// LRU evictions under capacity pressure. Watch for: sustained growth = cache too small.
	CacheEvictionsTotal prometheus.Counter

	// Prayer time computation latency (cache misses only).
	ComputeDurationSeconds prometheus.Histogram

	// Asr fixed-offset fallback occurrences. The astronomical model reached
	// its approximation boundary; these results are not solved geometry.
	AsrFallbackTotal prometheus.Counter

	// Seventh-of-night substitutions for unreachable Fajr/Isha angles.
	HighLatitudeFallbackTotal *prometheus.CounterVec

	// Rate limit denials. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter

	// Cache warming runs, failures and duration.
	CacheWarmingTotal           prometheus.Counter
	CacheWarmingErrorsTotal     prometheus.Counter
	CacheWarmingDurationSeconds prometheus.Histogram

	// Persistence writes by outcome. Best-effort; failures never fail a request.
	StoreWritesTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheHitsTotal",
			Help: "Total number of result cache hits",
		},
		[]string{"namespace"},
	)
	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheMissesTotal",
			Help: "Total number of result cache misses",
		},
		[]string{"namespace"},
	)
	CacheEvictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheEvictionsTotal",
			Help: "Total number of LRU evictions from the result cache",
		},
	)
	ComputeDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "computeDurationSeconds",
			Help:    "Prayer time computation latency in seconds (cache misses only)",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		},
	)
	AsrFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "asrFallbackTotal",
			Help: "Total results that used the fixed Asr fallback offset instead of solved geometry",
		},
	)
	HighLatitudeFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "highLatitudeFallbackTotal",
			Help: "Total seventh-of-night substitutions for unreachable prayer angles",
		},
		[]string{"event"},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by the rate limiter",
		},
	)
	CacheWarmingTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheWarmingTotal",
			Help: "Total number of cache warming runs",
		},
	)
	CacheWarmingErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheWarmingErrorsTotal",
			Help: "Total number of cache warming runs with at least one failure",
		},
	)
	CacheWarmingDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cacheWarmingDurationSeconds",
			Help:    "Cache warming run duration in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5},
		},
	)
	StoreWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storeWritesTotal",
			Help: "Total persistence writes by outcome",
		},
		[]string{"status"},
	)

	registry.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestsInFlight,
		CacheHitsTotal,
		CacheMissesTotal,
		CacheEvictionsTotal,
		ComputeDurationSeconds,
		AsrFallbackTotal,
		HighLatitudeFallbackTotal,
		RateLimitDeniedTotal,
		CacheWarmingTotal,
		CacheWarmingErrorsTotal,
		CacheWarmingDurationSeconds,
		StoreWritesTotal,
	)
}

// MetricsHandler returns the HTTP handler serving the private registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
