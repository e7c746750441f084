// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package analytics

import (
	"context"
	"sort"

	"github.com/populytics/populytics/internal/models"
)

const highGrowthLimit = 20

// HighGrowth finds countries growing strictly faster than the global mean
// growth rate and attaches each one's most recent economic snapshot.
func (e *Engine) HighGrowth(ctx context.Context) (*models.HighGrowthResult, error) {
	var result *models.HighGrowthResult
	err := instrument("high_growth", func() error {
		var err error
		result, err = e.highGrowth(ctx)
		return err
	})
	return result, err
}

func (e *Engine) highGrowth(ctx context.Context) (*models.HighGrowthResult, error) {
	countries, err := e.loadCountries(ctx)
	if err != nil {
		return nil, err
	}

	var growth meanAcc
	for _, c := range countries {
		growth.add(c.GrowthRate)
	}
	avgGrowthRate := growth.meanOr(0)

	var above []models.Country
	for _, c := range countries {
		if c.GrowthRate != nil && *c.GrowthRate > avgGrowthRate {
			above = append(above, c)
		}
	}
	if len(above) == 0 {
		return &models.HighGrowthResult{
			AvgGrowthRate:       avgGrowthRate,
			HighGrowthCountries: []models.HighGrowthCountry{},
		}, nil
	}

	snapshots, err := e.loadSnapshots(ctx, MostRecent())
	if err != nil {
		return nil, err
	}

	sort.SliceStable(above, func(i, j int) bool {
		return *above[i].GrowthRate > *above[j].GrowthRate
	})
	above = truncate(above, highGrowthLimit)

	entries := make([]models.HighGrowthCountry, 0, len(above))
	for _, c := range above {
		entries = append(entries, models.HighGrowthCountry{
			Country:      c.Country,
			CCA3:         c.CCA3,
			GrowthRate:   c.GrowthRate,
			Pop2025:      c.Pop2025,
			Pop2050:      c.Pop2050,
			EconomicData: snapshots.get(c.CCA3),
		})
	}

	return &models.HighGrowthResult{
		AvgGrowthRate:       avgGrowthRate,
		HighGrowthCountries: entries,
	}, nil
}
