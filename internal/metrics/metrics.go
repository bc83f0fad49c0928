// Package metrics provides Prometheus metrics for sahachari.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequestsTotal counts calls to external capability providers.
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sahachari",
			Name:      "provider_requests_total",
			Help:      "Total number of external provider calls",
		},
		[]string{"capability", "provider", "status"},
	)

	// ProviderDuration measures external provider call duration.
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sahachari",
			Name:      "provider_duration_seconds",
			Help:      "Duration of external provider calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"capability", "provider"},
	)

	// FallbacksTotal counts degraded results (original text, local heuristic, English speech).
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sahachari",
			Name:      "fallbacks_total",
			Help:      "Total number of degraded capability results",
		},
		[]string{"capability", "reason"},
	)

	// StoreWritesTotal counts backing document writes.
	StoreWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sahachari",
			Name:      "store_writes_total",
			Help:      "Total number of record store persistence attempts",
		},
		[]string{"store", "status"},
	)

	// CacheLookupsTotal counts cache hits and misses.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sahachari",
			Name:      "cache_lookups_total",
			Help:      "Total number of result cache lookups",
		},
		[]string{"cache", "result"},
	)
)

// RecordProviderCall records one provider call.
func RecordProviderCall(capability, provider string, err error, duration float64) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ProviderRequestsTotal.WithLabelValues(capability, provider, status).Inc()
	ProviderDuration.WithLabelValues(capability, provider).Observe(duration)
}

// RecordFallback records a degraded result.
func RecordFallback(capability, reason string) {
	FallbacksTotal.WithLabelValues(capability, reason).Inc()
}

// RecordStoreWrite records a persistence attempt.
func RecordStoreWrite(store string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreWritesTotal.WithLabelValues(store, status).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}
