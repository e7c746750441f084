// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/populytics/populytics/internal/logging"
	"github.com/populytics/populytics/internal/metrics"
	"github.com/populytics/populytics/internal/models"
)

// RefreshRegionRollups recomputes the cached rollup fields on every region
// from its member countries and writes them back. Dangling member codes are
// skipped; regions with no resolvable members are left untouched and logged.
//
// The analytics engine never reads these cached figures - it recomputes them
// live. The rollups exist for ingestion-side consumers and direct region
// reads. Returns the number of regions updated.
func (db *DB) RefreshRegionRollups(ctx context.Context) (int, error) {
	start := time.Now()

	regions, err := db.ListRegions(ctx)
	if err != nil {
		return 0, fmt.Errorf("rollup refresh failed to load regions: %w", err)
	}
	countries, err := db.ListCountries(ctx)
	if err != nil {
		return 0, fmt.Errorf("rollup refresh failed to load countries: %w", err)
	}

	byCode := make(map[string]models.Country, len(countries))
	for _, c := range countries {
		byCode[c.CCA3] = c
	}

	updated := 0
	for _, region := range regions {
		var (
			totalPop25, totalPop50, totalArea float64
			densitySum, growthSum             float64
			densityCount, growthCount         int
			resolved                          int
		)

		for _, code := range region.Countries {
			c, ok := byCode[code]
			if !ok {
				continue
			}
			resolved++
			if c.Pop2025 != nil {
				totalPop25 += *c.Pop2025
			}
			if c.Pop2050 != nil {
				totalPop50 += *c.Pop2050
			}
			if c.LandAreaKm != nil {
				totalArea += *c.LandAreaKm
			} else if c.Area != nil {
				totalArea += *c.Area
			}
			if c.Density != nil {
				densitySum += *c.Density
				densityCount++
			}
			if c.GrowthRate != nil {
				growthSum += *c.GrowthRate
				growthCount++
			}
		}

		if resolved == 0 {
			logging.Ctx(ctx).Warn().
				Str("region", region.Name).
				Msg("No resolvable member countries, rollups left unchanged")
			continue
		}

		var avgDensity, avgGrowth *float64
		if densityCount > 0 {
			v := densitySum / float64(densityCount)
			avgDensity = &v
		}
		if growthCount > 0 {
			v := growthSum / float64(growthCount)
			avgGrowth = &v
		}

		queryStart := time.Now()
		_, err := db.conn.ExecContext(ctx, `
			UPDATE regions
			SET total_population_2025 = ?, total_population_2050 = ?,
				average_density = ?, average_growth_rate = ?, total_area = ?,
				updated_at = ?
			WHERE name = ?`,
			totalPop25, totalPop50, nullFloat(avgDensity), nullFloat(avgGrowth),
			totalArea, time.Now().UTC(), region.Name)
		metrics.RecordDBQuery("update", "regions", time.Since(queryStart), err)
		if err != nil {
			return updated, fmt.Errorf("rollup refresh failed for region %s: %w", region.Name, err)
		}
		updated++
	}

	metrics.RecordRollupRefresh(time.Since(start), updated)
	logging.Ctx(ctx).Info().
		Int("regions", updated).
		Dur("elapsed", time.Since(start)).
		Msg("Region rollups refreshed")

	return updated, nil
}
