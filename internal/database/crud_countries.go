// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/populytics/populytics/internal/metrics"
	"github.com/populytics/populytics/internal/models"
)

const countryColumns = `cca3, cca2, country, pop2025, pop2050, area, land_area_km,
	density, growth_rate, world_percentage, rank, created_at, updated_at`

// scanCountry reads one country row. The scan target order must match
// countryColumns.
func scanCountry(scan func(...interface{}) error) (models.Country, error) {
	var (
		c          models.Country
		cca2       sql.NullString
		pop2025    sql.NullFloat64
		pop2050    sql.NullFloat64
		area       sql.NullFloat64
		landArea   sql.NullFloat64
		density    sql.NullFloat64
		growthRate sql.NullFloat64
		worldPct   sql.NullFloat64
		rank       sql.NullInt64
	)

	err := scan(&c.CCA3, &cca2, &c.Country, &pop2025, &pop2050, &area, &landArea,
		&density, &growthRate, &worldPct, &rank, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Country{}, err
	}

	c.CCA2 = stringVal(cca2)
	c.Pop2025 = floatPtr(pop2025)
	c.Pop2050 = floatPtr(pop2050)
	c.Area = floatPtr(area)
	c.LandAreaKm = floatPtr(landArea)
	c.Density = floatPtr(density)
	c.GrowthRate = floatPtr(growthRate)
	c.WorldPercentage = floatPtr(worldPct)
	c.Rank = intPtr(rank)
	return c, nil
}

// ListCountries returns every country ordered by CCA3 for deterministic
// output.
func (db *DB) ListCountries(ctx context.Context) ([]models.Country, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM countries ORDER BY cca3`, countryColumns))
	metrics.RecordDBQuery("select", "countries", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	var countries []models.Country
	for rows.Next() {
		c, err := scanCountry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("country row iteration failed: %w", err)
	}
	return countries, nil
}

// GetCountry returns the country with the given CCA3 code, or ErrNotFound.
func (db *DB) GetCountry(ctx context.Context, cca3 string) (models.Country, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM countries WHERE cca3 = ?`, countryColumns), cca3)
	c, err := scanCountry(row.Scan)
	metrics.RecordDBQuery("select", "countries", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Country{}, ErrNotFound
	}
	if err != nil {
		return models.Country{}, fmt.Errorf("failed to get country %s: %w", cca3, err)
	}
	return c, nil
}

// InsertCountry stores a new country record.
func (db *DB) InsertCountry(ctx context.Context, c models.Country) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO countries (cca3, cca2, country, pop2025, pop2050, area, land_area_km,
			density, growth_rate, world_percentage, rank, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CCA3, nullString(c.CCA2), c.Country,
		nullFloat(c.Pop2025), nullFloat(c.Pop2050), nullFloat(c.Area), nullFloat(c.LandAreaKm),
		nullFloat(c.Density), nullFloat(c.GrowthRate), nullFloat(c.WorldPercentage),
		nullInt(c.Rank), now, now)
	metrics.RecordDBQuery("insert", "countries", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert country %s: %w", c.CCA3, err)
	}
	return nil
}

// UpdateCountry replaces the mutable fields of an existing country.
// Returns ErrNotFound when no row matches.
func (db *DB) UpdateCountry(ctx context.Context, c models.Country) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `
		UPDATE countries
		SET cca2 = ?, country = ?, pop2025 = ?, pop2050 = ?, area = ?, land_area_km = ?,
			density = ?, growth_rate = ?, world_percentage = ?, rank = ?, updated_at = ?
		WHERE cca3 = ?`,
		nullString(c.CCA2), c.Country,
		nullFloat(c.Pop2025), nullFloat(c.Pop2050), nullFloat(c.Area), nullFloat(c.LandAreaKm),
		nullFloat(c.Density), nullFloat(c.GrowthRate), nullFloat(c.WorldPercentage),
		nullInt(c.Rank), time.Now().UTC(), c.CCA3)
	metrics.RecordDBQuery("update", "countries", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update country %s: %w", c.CCA3, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCountry removes a country by CCA3. Returns ErrNotFound when no row
// matches.
func (db *DB) DeleteCountry(ctx context.Context, cca3 string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM countries WHERE cca3 = ?`, cca3)
	metrics.RecordDBQuery("delete", "countries", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete country %s: %w", cca3, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCountrySummary returns aggregate statistics over all countries.
// Averages and extrema ignore rows with null density.
func (db *DB) GetCountrySummary(ctx context.Context) (models.CountrySummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(pop2025), 0),
			AVG(density),
			MAX(density),
			MIN(density)
		FROM countries`)

	var (
		summary    models.CountrySummary
		avgDensity sql.NullFloat64
		maxDensity sql.NullFloat64
		minDensity sql.NullFloat64
	)
	err := row.Scan(&summary.TotalCountries, &summary.TotalPopulation,
		&avgDensity, &maxDensity, &minDensity)
	metrics.RecordDBQuery("select", "countries", time.Since(start), err)
	if err != nil {
		return models.CountrySummary{}, fmt.Errorf("failed to compute country summary: %w", err)
	}

	summary.AvgDensity = floatPtr(avgDensity)
	summary.MaxDensity = floatPtr(maxDensity)
	summary.MinDensity = floatPtr(minDensity)
	return summary, nil
}
