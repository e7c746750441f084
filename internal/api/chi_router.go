// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/populytics/populytics/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's signature.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// NewRouter builds the full route tree for the service.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"ETag", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(h.perfMon.Middleware)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Route("/countries", func(r chi.Router) {
			r.Get("/", h.Countries)
			r.Post("/", h.CreateCountry)
			r.Get("/stats/summary", h.CountryStats)
			r.Get("/{code}", h.Country)
			r.Put("/{code}", h.UpdateCountry)
			r.Delete("/{code}", h.DeleteCountry)
		})

		r.Route("/regions", func(r chi.Router) {
			r.Get("/", h.Regions)
			r.Post("/", h.CreateRegion)
			r.Post("/refresh", h.RefreshRollups)
			r.Get("/{name}", h.Region)
		})

		r.Route("/indicators", func(r chi.Router) {
			r.Get("/", h.Indicators)
			r.Post("/", h.CreateIndicator)
			r.Get("/country/{code}", h.CountryIndicators)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/high-growth-with-economics", h.AnalyticsHighGrowth)
			r.Get("/regional-analysis", h.AnalyticsRegional)
			r.Get("/overcrowding-analysis", h.AnalyticsOvercrowding)
			r.Get("/projection-by-development", h.AnalyticsProjections)
			r.Get("/economic-population-correlation", h.AnalyticsCorrelation)
			r.Get("/regional-comparison", h.AnalyticsComparison)
		})

		r.Get("/performance", h.PerformanceStats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
