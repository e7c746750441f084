// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package api

import (
	"net/http"
	"time"
)

// HealthLive reports process liveness. It never touches the database.
//
// Method: GET
// Path: /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, time.Now(), false)
}

// HealthReady reports readiness to serve queries by pinging the database.
//
// Method: GET
// Path: /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Database is not reachable", err)
		return
	}
	respondSuccess(w, map[string]string{"status": "ready"}, start, false)
}

// Health reports overall status with cache statistics.
//
// Method: GET
// Path: /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "healthy"
	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
	}
	respondSuccess(w, map[string]interface{}{
		"status": status,
		"cache":  h.cache.Stats(),
	}, start, false)
}

// PerformanceStats reports per-endpoint latency percentiles from the
// in-process ring buffer.
//
// Method: GET
// Path: /api/v1/performance
func (h *Handler) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, h.perfMon.GetStats(), time.Now(), false)
}
