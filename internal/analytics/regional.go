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

// RegionalAnalysis computes live aggregates for every region from its member
// countries and their most recent economic snapshots. Cached rollup fields on
// the Region record are ignored; everything is recomputed here.
//
// Dangling member codes are skipped, and a region with no resolvable member
// still produces a row with zero totals and nil averages.
func (e *Engine) RegionalAnalysis(ctx context.Context) ([]models.RegionAnalysis, error) {
	var result []models.RegionAnalysis
	err := instrument("regional_analysis", func() error {
		var err error
		result, err = e.regionalAnalysis(ctx)
		return err
	})
	return result, err
}

func (e *Engine) regionalAnalysis(ctx context.Context) ([]models.RegionAnalysis, error) {
	regions, err := e.loadRegions(ctx)
	if err != nil {
		return nil, err
	}
	countries, err := e.loadCountries(ctx)
	if err != nil {
		return nil, err
	}
	snapshots, err := e.loadSnapshots(ctx, MostRecent())
	if err != nil {
		return nil, err
	}
	byCode := countryIndex(countries)

	result := make([]models.RegionAnalysis, 0, len(regions))
	for _, region := range regions {
		var (
			pop2025, pop2050, gdpTotal    sumAcc
			density, growth               meanAcc
			gdpPerCapita, life, urbanRate meanAcc
		)
		for _, code := range region.Countries {
			country, ok := byCode[code]
			if !ok {
				continue
			}
			pop2025.add(country.Pop2025)
			pop2050.add(country.Pop2050)
			density.add(country.Density)
			growth.add(country.GrowthRate)

			if snap := snapshots.get(code); snap != nil {
				gdpPerCapita.add(snap.GDPPerCapita)
				life.add(snap.LifeExpectancy)
				urbanRate.add(snap.UrbanizationRate)
				gdpTotal.add(snap.GDPTotal)
			}
		}

		result = append(result, models.RegionAnalysis{
			Name:                region.Name,
			Type:                region.Type,
			CountryCount:        len(region.Countries),
			TotalPopulation2025: pop2025.total,
			TotalPopulation2050: pop2050.total,
			AvgDensity:          density.mean(),
			AvgGrowthRate:       growth.mean(),
			AvgGDPPerCapita:     gdpPerCapita.mean(),
			AvgLifeExpectancy:   life.mean(),
			AvgUrbanization:     urbanRate.mean(),
			TotalGDP:            gdpTotal.total,
			ProjectedGrowth:     pop2050.total - pop2025.total,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalPopulation2025 > result[j].TotalPopulation2025
	})
	return result, nil
}
