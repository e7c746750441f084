// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/populytics/populytics/internal/logging"
)

// RequestMetrics is one recorded request observation.
type RequestMetrics struct {
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// PerformanceMonitor keeps a bounded ring of recent request metrics and
// derives per-endpoint latency statistics from it.
type PerformanceMonitor struct {
	mu         sync.RWMutex
	metrics    []RequestMetrics
	maxMetrics int
	next       int
	full       bool
}

// EndpointStats summarizes latency for one method+path pair.
type EndpointStats struct {
	Endpoint     string `json:"endpoint"`
	RequestCount int    `json:"request_count"`
	ErrorCount   int    `json:"error_count"`
	AvgMS        int64  `json:"avg_ms"`
	P50MS        int64  `json:"p50_ms"`
	P95MS        int64  `json:"p95_ms"`
	P99MS        int64  `json:"p99_ms"`
}

// NewPerformanceMonitor creates a monitor retaining the last maxMetrics
// requests.
func NewPerformanceMonitor(maxMetrics int) *PerformanceMonitor {
	if maxMetrics <= 0 {
		maxMetrics = 1000
	}
	return &PerformanceMonitor{
		metrics:    make([]RequestMetrics, maxMetrics),
		maxMetrics: maxMetrics,
	}
}

// RecordRequest stores one observation, evicting the oldest when full.
func (pm *PerformanceMonitor) RecordRequest(metric RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.metrics[pm.next] = metric
	pm.next++
	if pm.next == pm.maxMetrics {
		pm.next = 0
		pm.full = true
	}
}

// snapshot returns a copy of the recorded metrics (oldest first not
// guaranteed; callers only aggregate).
func (pm *PerformanceMonitor) snapshot() []RequestMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	n := pm.next
	if pm.full {
		n = pm.maxMetrics
	}
	out := make([]RequestMetrics, n)
	copy(out, pm.metrics[:n])
	return out
}

// GetStats aggregates recorded metrics per endpoint, sorted by request
// count descending.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	byEndpoint := make(map[string][]RequestMetrics)
	for _, m := range pm.snapshot() {
		key := m.Method + " " + m.Path
		byEndpoint[key] = append(byEndpoint[key], m)
	}

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, ms := range byEndpoint {
		durations := make([]int64, 0, len(ms))
		var sum int64
		errorCount := 0
		for _, m := range ms {
			durations = append(durations, m.DurationMS)
			sum += m.DurationMS
			if m.StatusCode >= 500 {
				errorCount++
			}
		}
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: len(ms),
			ErrorCount:   errorCount,
			AvgMS:        sum / int64(len(ms)),
			P50MS:        percentile(durations, 0.50),
			P95MS:        percentile(durations, 0.95),
			P99MS:        percentile(durations, 0.99),
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].RequestCount > stats[j].RequestCount })
	return stats
}

// LogSlowRequests logs endpoints whose p95 exceeds thresholdMS.
func (pm *PerformanceMonitor) LogSlowRequests(thresholdMS int64) {
	for _, s := range pm.GetStats() {
		if s.P95MS > thresholdMS {
			logging.Warn().
				Str("endpoint", s.Endpoint).
				Int64("p95_ms", s.P95MS).
				Int("requests", s.RequestCount).
				Msg("Slow endpoint detected")
		}
	}
}

// Middleware records every request passing through it.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		pm.RecordRequest(RequestMetrics{
			Method:     r.Method,
			Path:       r.URL.Path,
			StatusCode: wrapper.statusCode,
			DurationMS: time.Since(start).Milliseconds(),
			Timestamp:  start,
		})
	})
}

// percentile returns the p-th percentile of an ascending-sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}
