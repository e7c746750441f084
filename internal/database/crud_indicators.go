// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/populytics/populytics/internal/metrics"
	"github.com/populytics/populytics/internal/models"
)

const indicatorColumns = `country_code, year, gdp_per_capita, gdp_total,
	human_development_index, gini_coefficient, unemployment_rate,
	urbanization_rate, life_expectancy, literacy_rate, created_at, updated_at`

// IndicatorFilter narrows indicator listings. Zero values mean "no filter".
type IndicatorFilter struct {
	CountryCode string
	Year        int
}

// scanIndicator reads one indicator row. Scan target order must match
// indicatorColumns.
func scanIndicator(scan func(...interface{}) error) (models.EconomicIndicator, error) {
	var (
		ind      models.EconomicIndicator
		gdpPC    sql.NullFloat64
		gdpTotal sql.NullFloat64
		hdi      sql.NullFloat64
		gini     sql.NullFloat64
		unemp    sql.NullFloat64
		urban    sql.NullFloat64
		lifeExp  sql.NullFloat64
		literacy sql.NullFloat64
	)

	err := scan(&ind.CountryCode, &ind.Year, &gdpPC, &gdpTotal, &hdi, &gini,
		&unemp, &urban, &lifeExp, &literacy, &ind.CreatedAt, &ind.UpdatedAt)
	if err != nil {
		return models.EconomicIndicator{}, err
	}

	ind.GDPPerCapita = floatPtr(gdpPC)
	ind.GDPTotal = floatPtr(gdpTotal)
	ind.HumanDevelopmentIndex = floatPtr(hdi)
	ind.GiniCoefficient = floatPtr(gini)
	ind.UnemploymentRate = floatPtr(unemp)
	ind.UrbanizationRate = floatPtr(urban)
	ind.LifeExpectancy = floatPtr(lifeExp)
	ind.LiteracyRate = floatPtr(literacy)
	return ind, nil
}

// ListIndicators returns indicators matching the filter, ordered by country
// code then year descending so the most recent observation per country comes
// first.
func (db *DB) ListIndicators(ctx context.Context, filter IndicatorFilter) ([]models.EconomicIndicator, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		clauses []string
		args    []interface{}
	)
	if filter.CountryCode != "" {
		clauses = append(clauses, "country_code = ?")
		args = append(args, strings.ToUpper(filter.CountryCode))
	}
	if filter.Year != 0 {
		clauses = append(clauses, "year = ?")
		args = append(args, filter.Year)
	}

	query := fmt.Sprintf(`SELECT %s FROM economic_indicators`, indicatorColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY country_code, year DESC"

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "economic_indicators", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list indicators: %w", err)
	}
	defer rows.Close()

	var indicators []models.EconomicIndicator
	for rows.Next() {
		ind, err := scanIndicator(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan indicator: %w", err)
		}
		indicators = append(indicators, ind)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("indicator row iteration failed: %w", err)
	}
	return indicators, nil
}

// ListIndicatorsByCountry returns all observations for one country, most
// recent year first.
func (db *DB) ListIndicatorsByCountry(ctx context.Context, countryCode string) ([]models.EconomicIndicator, error) {
	return db.ListIndicators(ctx, IndicatorFilter{CountryCode: countryCode})
}

// InsertIndicator stores a new economic observation. The (country_code,
// year) pair must be unique; a duplicate year for a country is rejected by
// the primary key rather than silently stacked.
func (db *DB) InsertIndicator(ctx context.Context, ind models.EconomicIndicator) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO economic_indicators (country_code, year, gdp_per_capita, gdp_total,
			human_development_index, gini_coefficient, unemployment_rate,
			urbanization_rate, life_expectancy, literacy_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.ToUpper(ind.CountryCode), ind.Year,
		nullFloat(ind.GDPPerCapita), nullFloat(ind.GDPTotal),
		nullFloat(ind.HumanDevelopmentIndex), nullFloat(ind.GiniCoefficient),
		nullFloat(ind.UnemploymentRate), nullFloat(ind.UrbanizationRate),
		nullFloat(ind.LifeExpectancy), nullFloat(ind.LiteracyRate), now, now)
	metrics.RecordDBQuery("insert", "economic_indicators", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert indicator %s/%d: %w", ind.CountryCode, ind.Year, err)
	}
	return nil
}

// ListAllIndicators returns every economic indicator row. The analytics
// engine uses this to build snapshot indexes in memory.
func (db *DB) ListAllIndicators(ctx context.Context) ([]models.EconomicIndicator, error) {
	return db.ListIndicators(ctx, IndicatorFilter{})
}
