// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/populytics/populytics/internal/analytics"
	"github.com/populytics/populytics/internal/cache"
	"github.com/populytics/populytics/internal/metrics"
)

// This file contains the six analytics endpoints. Every procedure is a pure
// read over the store, so results are cached for the configured TTL and the
// cache is cleared whenever the rollup refresher runs.

// executeCached serves the procedure from cache when possible, otherwise
// runs it and stores the result.
func (h *Handler) executeCached(w http.ResponseWriter, r *http.Request, endpoint string, params interface{},
	run func(ctx context.Context) (interface{}, error),
) {
	start := time.Now()
	key := cache.GenerateKey(endpoint, params)

	if cached, found := h.cache.Get(key); found {
		metrics.RecordCacheHit()
		respondSuccess(w, cached, start, true)
		return
	}
	metrics.RecordCacheMiss()

	result, err := run(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "ANALYTICS_ERROR", "Analytics query failed", err)
		return
	}

	h.cache.Set(key, result)
	respondSuccess(w, result, start, false)
}

// AnalyticsHighGrowth returns countries growing faster than the global mean,
// each with its most recent economic snapshot.
//
// Method: GET
// Path: /api/v1/analytics/high-growth-with-economics
func (h *Handler) AnalyticsHighGrowth(w http.ResponseWriter, r *http.Request) {
	h.executeCached(w, r, "high-growth", nil, func(ctx context.Context) (interface{}, error) {
		return h.engine.HighGrowth(ctx)
	})
}

// AnalyticsRegional returns live population and economic aggregates for
// every region, most populous first.
//
// Method: GET
// Path: /api/v1/analytics/regional-analysis
func (h *Handler) AnalyticsRegional(w http.ResponseWriter, r *http.Request) {
	h.executeCached(w, r, "regional", nil, func(ctx context.Context) (interface{}, error) {
		return h.engine.RegionalAnalysis(ctx)
	})
}

// AnalyticsOvercrowding ranks dense, economically strained countries.
//
// Method: GET
// Path: /api/v1/analytics/overcrowding-analysis
//
// Query Parameters:
//   - density_threshold: people per km2 cutoff (default from config, 300)
//   - gdp_threshold: USD per capita cutoff (default from config, 5000)
func (h *Handler) AnalyticsOvercrowding(w http.ResponseWriter, r *http.Request) {
	params := analytics.OvercrowdingParams{
		DensityThreshold: getFloatParam(r, "density_threshold", h.cfg.Analytics.DensityThreshold),
		GDPThreshold:     getFloatParam(r, "gdp_threshold", h.cfg.Analytics.GDPPerCapitaThreshold),
	}
	if params.DensityThreshold < 0 || params.GDPThreshold < 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Thresholds must be non-negative", nil)
		return
	}
	h.executeCached(w, r, "overcrowding", params, func(ctx context.Context) (interface{}, error) {
		return h.engine.Overcrowding(ctx, params)
	})
}

// AnalyticsProjections returns the 2025 to 2050 population movers.
//
// Method: GET
// Path: /api/v1/analytics/projection-by-development
func (h *Handler) AnalyticsProjections(w http.ResponseWriter, r *http.Request) {
	h.executeCached(w, r, "projections", nil, func(ctx context.Context) (interface{}, error) {
		return h.engine.ProjectionMovers(ctx)
	})
}

// AnalyticsCorrelation summarizes the wealth and density relationship across
// countries with economic data.
//
// Method: GET
// Path: /api/v1/analytics/economic-population-correlation
func (h *Handler) AnalyticsCorrelation(w http.ResponseWriter, r *http.Request) {
	h.executeCached(w, r, "correlation", nil, func(ctx context.Context) (interface{}, error) {
		return h.engine.Correlation(ctx)
	})
}

// AnalyticsComparison returns the faceted regional comparison.
//
// Method: GET
// Path: /api/v1/analytics/regional-comparison
func (h *Handler) AnalyticsComparison(w http.ResponseWriter, r *http.Request) {
	h.executeCached(w, r, "comparison", nil, func(ctx context.Context) (interface{}, error) {
		return h.engine.RegionalComparison(ctx)
	})
}
