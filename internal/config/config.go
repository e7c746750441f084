// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

// Package config provides application configuration loaded from defaults,
// an optional YAML file, and environment variables (in that order of
// precedence, later sources winning).
package config

import (
	"time"
)

// Config is the root configuration for the Populytics server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB connection and tuning settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. Use ":memory:" for an in-memory store.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads sets the DuckDB thread count. 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`

	// PreserveInsertionOrder keeps DuckDB's default scan ordering. Disabling
	// it reduces memory usage for large imports.
	PreserveInsertionOrder bool `koanf:"preserve_insertion_order"`

	// SeedDir points at a directory of reference CSVs (countries.csv,
	// economic_indicators.csv). When set and the store is empty, the server
	// imports them at startup.
	SeedDir string `koanf:"seed_dir"`
}

// APIConfig holds settings for the HTTP API surface.
type APIConfig struct {
	// CORSOrigins lists allowed origins for the map client.
	CORSOrigins []string `koanf:"cors_origins"`

	// CacheTTL controls how long analytics responses are cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// AnalyticsConfig holds defaults for the aggregation procedures.
type AnalyticsConfig struct {
	// DensityThreshold is the people-per-km2 cutoff for the overcrowding
	// analysis. Overridable per request.
	DensityThreshold float64 `koanf:"density_threshold"`

	// GDPPerCapitaThreshold is the USD cutoff below which a dense country is
	// flagged as underdeveloped. Overridable per request.
	GDPPerCapitaThreshold float64 `koanf:"gdp_per_capita_threshold"`

	// ReferenceYear pins the economic snapshot year for procedures that
	// require cross-country comparability (overcrowding, regional comparison).
	ReferenceYear int `koanf:"reference_year"`

	// RollupRefreshInterval is how often cached region rollups are recomputed
	// from member countries. 0 disables the refresher.
	RollupRefreshInterval time.Duration `koanf:"rollup_refresh_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values applied. Defaults
// are loaded first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:                   "/data/populytics.duckdb",
			MaxMemory:              "2GB",
			Threads:                0, // 0 = runtime.NumCPU()
			PreserveInsertionOrder: true,
			SeedDir:                "",
		},
		API: APIConfig{
			CORSOrigins: []string{"*"},
			CacheTTL:    5 * time.Minute,
		},
		Analytics: AnalyticsConfig{
			DensityThreshold:      300,
			GDPPerCapitaThreshold: 5000,
			ReferenceYear:         2024,
			RollupRefreshInterval: 6 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
