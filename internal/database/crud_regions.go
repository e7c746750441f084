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

	"github.com/goccy/go-json"

	"github.com/populytics/populytics/internal/metrics"
	"github.com/populytics/populytics/internal/models"
)

const regionColumns = `name, type, countries, total_population_2025,
	total_population_2050, average_density, average_growth_rate, total_area,
	created_at, updated_at`

// scanRegion reads one region row, decoding the JSON member list.
func scanRegion(scan func(...interface{}) error) (models.Region, error) {
	var (
		r          models.Region
		regionType string
		members    string
		totalPop25 sql.NullFloat64
		totalPop50 sql.NullFloat64
		avgDensity sql.NullFloat64
		avgGrowth  sql.NullFloat64
		totalArea  sql.NullFloat64
	)

	err := scan(&r.Name, &regionType, &members, &totalPop25, &totalPop50,
		&avgDensity, &avgGrowth, &totalArea, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return models.Region{}, err
	}

	r.Type = models.RegionType(regionType)
	if err := json.Unmarshal([]byte(members), &r.Countries); err != nil {
		return models.Region{}, fmt.Errorf("failed to decode region members for %s: %w", r.Name, err)
	}
	r.TotalPopulation2025 = floatPtr(totalPop25)
	r.TotalPopulation2050 = floatPtr(totalPop50)
	r.AverageDensity = floatPtr(avgDensity)
	r.AverageGrowthRate = floatPtr(avgGrowth)
	r.TotalArea = floatPtr(totalArea)
	return r, nil
}

// ListRegions returns every region ordered by name.
func (db *DB) ListRegions(ctx context.Context) ([]models.Region, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM regions ORDER BY name`, regionColumns))
	metrics.RecordDBQuery("select", "regions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	var regions []models.Region
	for rows.Next() {
		r, err := scanRegion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("region row iteration failed: %w", err)
	}
	return regions, nil
}

// GetRegion returns the region with the given name, or ErrNotFound.
func (db *DB) GetRegion(ctx context.Context, name string) (models.Region, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM regions WHERE name = ?`, regionColumns), name)
	r, err := scanRegion(row.Scan)
	metrics.RecordDBQuery("select", "regions", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Region{}, ErrNotFound
	}
	if err != nil {
		return models.Region{}, fmt.Errorf("failed to get region %s: %w", name, err)
	}
	return r, nil
}

// InsertRegion stores a new region with its member list encoded as JSON.
func (db *DB) InsertRegion(ctx context.Context, r models.Region) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	members, err := json.Marshal(r.Countries)
	if err != nil {
		return fmt.Errorf("failed to encode region members: %w", err)
	}

	now := time.Now().UTC()
	start := time.Now()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO regions (name, type, countries, total_population_2025,
			total_population_2050, average_density, average_growth_rate, total_area,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, string(r.Type), string(members),
		nullFloat(r.TotalPopulation2025), nullFloat(r.TotalPopulation2050),
		nullFloat(r.AverageDensity), nullFloat(r.AverageGrowthRate),
		nullFloat(r.TotalArea), now, now)
	metrics.RecordDBQuery("insert", "regions", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert region %s: %w", r.Name, err)
	}
	return nil
}
