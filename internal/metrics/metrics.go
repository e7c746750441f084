// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

// Package metrics provides Prometheus instrumentation for the Populytics
// server: DuckDB query performance, API endpoint latency and throughput,
// analytics procedure timing, cache efficiency, and rollup refresh runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API metrics.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Analytics procedure metrics.
	AnalyticsProcedureDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_procedure_duration_seconds",
			Help:    "Duration of analytics aggregation procedures in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)

	AnalyticsProcedureErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_procedure_errors_total",
			Help: "Total number of analytics procedure failures",
		},
		[]string{"procedure"},
	)

	// Cache metrics.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_cache_hits_total",
			Help: "Total number of analytics cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_cache_misses_total",
			Help: "Total number of analytics cache misses",
		},
	)

	// Region rollup refresher metrics.
	RollupRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "region_rollup_refresh_duration_seconds",
			Help:    "Duration of region rollup refresh runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RollupRefreshRegions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "region_rollup_refresh_regions",
			Help: "Number of regions updated by the last rollup refresh",
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, endpoint, statusCode).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
}

// RecordProcedure records an analytics procedure run.
func RecordProcedure(procedure string, duration time.Duration, err error) {
	AnalyticsProcedureDuration.WithLabelValues(procedure).Observe(duration.Seconds())
	if err != nil {
		AnalyticsProcedureErrors.WithLabelValues(procedure).Inc()
	}
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() { CacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() { CacheMisses.Inc() }

// RecordRollupRefresh records one rollup refresh run.
func RecordRollupRefresh(duration time.Duration, regions int) {
	RollupRefreshDuration.Observe(duration.Seconds())
	RollupRefreshRegions.Set(float64(regions))
}
