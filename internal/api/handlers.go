// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

// Package api exposes the REST surface: CRUD over countries, regions, and
// economic indicators, the analytics procedures, and operational endpoints
// for health, cache, and performance inspection.
package api

import (
	"time"

	"github.com/populytics/populytics/internal/analytics"
	"github.com/populytics/populytics/internal/cache"
	"github.com/populytics/populytics/internal/config"
	"github.com/populytics/populytics/internal/database"
	"github.com/populytics/populytics/internal/logging"
	"github.com/populytics/populytics/internal/middleware"
)

// defaultCacheTTL bounds how stale a cached procedure result may get when
// no TTL is configured.
const defaultCacheTTL = 5 * time.Minute

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	db      *database.DB
	engine  *analytics.Engine
	cfg     *config.Config
	cache   *cache.Cache
	perfMon *middleware.PerformanceMonitor
}

// NewHandler wires a handler with its own analytics result cache. The cache
// TTL comes from api.cache_ttl.
func NewHandler(db *database.DB, engine *analytics.Engine, cfg *config.Config) *Handler {
	ttl := cfg.API.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Handler{
		db:      db,
		engine:  engine,
		cfg:     cfg,
		cache:   cache.New(ttl),
		perfMon: middleware.NewPerformanceMonitor(1000),
	}
}

// ClearCache drops all cached analytics results. The rollup refresher calls
// this after every recompute so dashboards pick up fresh data.
func (h *Handler) ClearCache() {
	h.cache.Clear()
	logging.Debug().Msg("Analytics cache cleared")
}

// PerformanceMonitor exposes the per-endpoint latency tracker for the router
// to install as middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}
