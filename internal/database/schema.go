// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the three entity tables. Region membership is
// persisted as a JSON text column; the engine resolves members in Go, so no
// list type support is required from the driver.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS countries (
		cca3 VARCHAR PRIMARY KEY,
		cca2 VARCHAR,
		country VARCHAR NOT NULL,
		pop2025 DOUBLE,
		pop2050 DOUBLE,
		area DOUBLE,
		land_area_km DOUBLE,
		density DOUBLE,
		growth_rate DOUBLE,
		world_percentage DOUBLE,
		rank INTEGER,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS economic_indicators (
		country_code VARCHAR NOT NULL,
		year INTEGER NOT NULL,
		gdp_per_capita DOUBLE,
		gdp_total DOUBLE,
		human_development_index DOUBLE,
		gini_coefficient DOUBLE,
		unemployment_rate DOUBLE,
		urbanization_rate DOUBLE,
		life_expectancy DOUBLE,
		literacy_rate DOUBLE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (country_code, year)
	)`,
	`CREATE TABLE IF NOT EXISTS regions (
		name VARCHAR PRIMARY KEY,
		type VARCHAR NOT NULL,
		countries VARCHAR NOT NULL,
		total_population_2025 DOUBLE,
		total_population_2050 DOUBLE,
		average_density DOUBLE,
		average_growth_rate DOUBLE,
		total_area DOUBLE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
}

// initSchema creates all tables if they do not exist.
func (db *DB) initSchema(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
