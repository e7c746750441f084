// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

// Package main is the entry point for the Populytics server.
//
// Populytics is a self-hosted population analytics platform that serves
// demographic and economic aggregations over a DuckDB-backed store of
// countries, regions, and yearly economic indicators.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional YAML file, environment variables (Koanf v2)
//  2. Database: DuckDB with the countries/regions/indicators schema
//  3. Seeding: optional CSV import when the store is empty (SEED_DIR)
//  4. Analytics: the aggregation engine behind the six dashboard procedures
//  5. HTTP Server: REST API under /api/v1 plus Prometheus /metrics
//  6. Supervision: a Suture tree running the HTTP server and the rollup refresher
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (POPULYTICS_ prefix, e.g. POPULYTICS_SERVER_PORT)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (configurable timeout)
//   - Stops the rollup refresher and closes the database
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/populytics/populytics/internal/analytics"
	"github.com/populytics/populytics/internal/api"
	"github.com/populytics/populytics/internal/config"
	"github.com/populytics/populytics/internal/database"
	"github.com/populytics/populytics/internal/ingest"
	"github.com/populytics/populytics/internal/logging"
	"github.com/populytics/populytics/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Int("reference_year", cfg.Analytics.ReferenceYear).
		Msg("Starting Populytics")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed reference data when the store is empty and a seed dir is set
	if cfg.Database.SeedDir != "" {
		seeder := ingest.NewSeeder(db, cfg.Database.SeedDir)
		if err := seeder.SeedIfEmpty(ctx); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to seed reference data")
		}
	}

	engine := analytics.New(db, &cfg.Analytics)
	handler := api.NewHandler(db, engine, cfg)
	router := api.NewRouter(handler, cfg.API.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Bridge zerolog to slog for sutureslog
	slogLogger := logging.NewSlogLogger()

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(slogLogger, treeCfg)

	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	tree.AddJobService(supervisor.NewRollupRefresher(db, cfg.Analytics.RollupRefreshInterval, handler.ClearCache))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor closes the channel
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
