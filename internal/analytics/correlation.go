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

const correlationTopLimit = 5

// Correlation joins every country with its most recent economic snapshot and
// summarizes the relationship between wealth and population pressure:
// rounded pooled means, GDP/density quadrant counts against those means, and
// three top-5 rankings. Countries with no snapshot at all are discarded
// before any aggregation.
func (e *Engine) Correlation(ctx context.Context) (*models.CorrelationResult, error) {
	var result *models.CorrelationResult
	err := instrument("correlation", func() error {
		var err error
		result, err = e.correlation(ctx)
		return err
	})
	return result, err
}

func (e *Engine) correlation(ctx context.Context) (*models.CorrelationResult, error) {
	countries, err := e.loadCountries(ctx)
	if err != nil {
		return nil, err
	}
	snapshots, err := e.loadSnapshots(ctx, MostRecent())
	if err != nil {
		return nil, err
	}

	joined := make([]models.CorrelationCountry, 0, len(countries))
	var density, gdp, growth, life, urban meanAcc
	for _, c := range countries {
		snap := snapshots.get(c.CCA3)
		if snap == nil {
			continue
		}
		joined = append(joined, models.CorrelationCountry{
			Country:          c.Country,
			CCA3:             c.CCA3,
			Density:          c.Density,
			GrowthRate:       c.GrowthRate,
			Pop2025:          c.Pop2025,
			GDPPerCapita:     snap.GDPPerCapita,
			LifeExpectancy:   snap.LifeExpectancy,
			UrbanizationRate: snap.UrbanizationRate,
		})
		density.add(c.Density)
		gdp.add(snap.GDPPerCapita)
		growth.add(c.GrowthRate)
		life.add(snap.LifeExpectancy)
		urban.add(snap.UrbanizationRate)
	}

	// Quadrant counts compare against the unrounded means, with an absent
	// mean treated as zero. Countries missing either field land in neither
	// bucket.
	meanGDP := gdp.meanOr(0)
	meanDensity := density.meanOr(0)
	var insights models.CorrelationInsights
	for _, c := range joined {
		if c.GDPPerCapita == nil || c.Density == nil {
			continue
		}
		if *c.Density > meanDensity {
			if *c.GDPPerCapita > meanGDP {
				insights.HighGDPHighDensity++
			} else if *c.GDPPerCapita < meanGDP {
				insights.LowGDPHighDensity++
			}
		}
	}

	return &models.CorrelationResult{
		Summary: models.CorrelationSummary{
			AvgDensity:        roundPtr(density.mean(), 2),
			AvgGDPPerCapita:   roundPtr(gdp.mean(), 2),
			AvgGrowthRate:     roundPtr(growth.mean(), 4),
			AvgLifeExpectancy: roundPtr(life.mean(), 1),
			AvgUrbanization:   roundPtr(urban.mean(), 2),
		},
		Insights: insights,
		TopPerformers: models.CorrelationTopPerformers{
			HighGDP:     topByField(joined, func(c models.CorrelationCountry) *float64 { return c.GDPPerCapita }),
			HighDensity: topByField(joined, func(c models.CorrelationCountry) *float64 { return c.Density }),
			BestBalance: topByBalance(joined),
		},
	}, nil
}

// topByField ranks countries descending by one nullable field, excluding
// countries where it is absent, and keeps the top 5.
func topByField(joined []models.CorrelationCountry, field func(models.CorrelationCountry) *float64) []models.CorrelationCountry {
	ranked := make([]models.CorrelationCountry, 0, len(joined))
	for _, c := range joined {
		if field(c) != nil {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *field(ranked[i]) > *field(ranked[j])
	})
	return truncate(ranked, correlationTopLimit)
}

// topByBalance ranks countries by gdpPerCapita / (1 + density) descending.
// Both inputs must be present for a country to qualify.
func topByBalance(joined []models.CorrelationCountry) []models.CorrelationCountry {
	ranked := make([]models.CorrelationCountry, 0, len(joined))
	for _, c := range joined {
		if c.GDPPerCapita == nil || c.Density == nil {
			continue
		}
		score := *c.GDPPerCapita / (1 + *c.Density)
		c.BalanceScore = &score
		ranked = append(ranked, c)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].BalanceScore > *ranked[j].BalanceScore
	})
	return truncate(ranked, correlationTopLimit)
}
