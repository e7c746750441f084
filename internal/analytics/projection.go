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

const projectionMoversLimit = 8

// ProjectionMovers derives the 2025 to 2050 population change for every
// country and reports the global summary plus the biggest gainers and
// decliners. A country missing either population figure gets a nil change
// and is left out of both rankings; percentChange is nil whenever pop2025 is
// zero or negative.
func (e *Engine) ProjectionMovers(ctx context.Context) (*models.ProjectionMoversResult, error) {
	var result *models.ProjectionMoversResult
	err := instrument("projection_movers", func() error {
		var err error
		result, err = e.projectionMovers(ctx)
		return err
	})
	return result, err
}

func (e *Engine) projectionMovers(ctx context.Context) (*models.ProjectionMoversResult, error) {
	countries, err := e.loadCountries(ctx)
	if err != nil {
		return nil, err
	}

	var (
		growth, pctChange meanAcc
		pop2025, pop2050  sumAcc
	)
	rows := make([]models.ProjectionCountry, 0, len(countries))
	for _, c := range countries {
		row := models.ProjectionCountry{
			Country:         c.Country,
			CCA3:            c.CCA3,
			Pop2025:         c.Pop2025,
			Pop2050:         c.Pop2050,
			GrowthRate:      c.GrowthRate,
			Density:         c.Density,
			WorldPercentage: c.WorldPercentage,
		}
		if c.Pop2025 != nil && c.Pop2050 != nil {
			change := *c.Pop2050 - *c.Pop2025
			row.Change = &change
			if *c.Pop2025 > 0 {
				pct := change / *c.Pop2025 * 100
				row.PercentChange = &pct
			}
		}
		growth.add(c.GrowthRate)
		pctChange.add(row.PercentChange)
		pop2025.add(c.Pop2025)
		pop2050.add(c.Pop2050)
		rows = append(rows, row)
	}

	movers := make([]models.ProjectionCountry, 0, len(rows))
	for _, row := range rows {
		if row.Change != nil {
			movers = append(movers, row)
		}
	}

	gainers := make([]models.ProjectionCountry, len(movers))
	copy(gainers, movers)
	sort.SliceStable(gainers, func(i, j int) bool {
		return *gainers[i].Change > *gainers[j].Change
	})

	decliners := make([]models.ProjectionCountry, len(movers))
	copy(decliners, movers)
	sort.SliceStable(decliners, func(i, j int) bool {
		return *decliners[i].Change < *decliners[j].Change
	})

	return &models.ProjectionMoversResult{
		Summary: models.ProjectionSummary{
			AvgGrowthRate:    roundPtr(growth.mean(), 4),
			AvgPercentChange: roundPtr(pctChange.mean(), 2),
			TotalPop2025:     pop2025.total,
			TotalPop2050:     pop2050.total,
			ProjectedChange:  pop2050.total - pop2025.total,
		},
		TopGainers:   truncate(gainers, projectionMoversLimit),
		TopDecliners: truncate(decliners, projectionMoversLimit),
	}, nil
}
