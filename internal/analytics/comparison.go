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

const comparisonTopLimit = 10

// regionJoin is the shared base the three comparison facets read from: one
// region with its live aggregates over resolvable members and reference-year
// snapshots.
type regionJoin struct {
	region models.Region

	totalPop2025 float64
	totalPop2050 float64
	avgDensity   *float64
	avgGrowth    *float64
	avgGDP       *float64
	avgLife      *float64
}

// RegionalComparison produces three independent views over one region join:
// regions grouped by type with type-level totals, the ten most populous
// subregions with their projected change, and the ten regions leading on
// average GDP per capita.
func (e *Engine) RegionalComparison(ctx context.Context) (*models.RegionalComparisonResult, error) {
	var result *models.RegionalComparisonResult
	err := instrument("regional_comparison", func() error {
		var err error
		result, err = e.regionalComparison(ctx)
		return err
	})
	return result, err
}

func (e *Engine) regionalComparison(ctx context.Context) (*models.RegionalComparisonResult, error) {
	regions, err := e.loadRegions(ctx)
	if err != nil {
		return nil, err
	}
	countries, err := e.loadCountries(ctx)
	if err != nil {
		return nil, err
	}
	snapshots, err := e.loadSnapshots(ctx, FixedYear(e.referenceYear))
	if err != nil {
		return nil, err
	}
	byCode := countryIndex(countries)

	joins := make([]regionJoin, 0, len(regions))
	for _, region := range regions {
		var (
			pop2025, pop2050           sumAcc
			density, growth, gdp, life meanAcc
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
				gdp.add(snap.GDPPerCapita)
				life.add(snap.LifeExpectancy)
			}
		}
		joins = append(joins, regionJoin{
			region:       region,
			totalPop2025: pop2025.total,
			totalPop2050: pop2050.total,
			avgDensity:   density.mean(),
			avgGrowth:    growth.mean(),
			avgGDP:       gdp.mean(),
			avgLife:      life.mean(),
		})
	}

	return &models.RegionalComparisonResult{
		ByType:          facetByType(joins),
		TopRegions:      facetTopRegions(joins),
		EconomicLeaders: facetEconomicLeaders(joins),
	}, nil
}

// facetByType groups regions by type in a fixed type order, regions in store
// order within each group, with sums-of-sums at the type level.
func facetByType(joins []regionJoin) []models.RegionTypeGroup {
	groups := make(map[models.RegionType]*models.RegionTypeGroup)
	for _, j := range joins {
		group, ok := groups[j.region.Type]
		if !ok {
			group = &models.RegionTypeGroup{Type: j.region.Type}
			groups[j.region.Type] = group
		}
		group.Regions = append(group.Regions, models.ComparisonRegion{
			Name:         j.region.Name,
			CountryCount: len(j.region.Countries),
			TotalPop2025: j.totalPop2025,
			TotalPop2050: j.totalPop2050,
			AvgDensity:   j.avgDensity,
			AvgGDP:       j.avgGDP,
		})
		group.TotalRegions++
		group.TotalCountries += len(j.region.Countries)
		group.GlobalPop2025 += j.totalPop2025
		group.GlobalPop2050 += j.totalPop2050
	}

	ordered := make([]models.RegionTypeGroup, 0, len(groups))
	for _, t := range []models.RegionType{
		models.RegionTypeContinent,
		models.RegionTypeSubregion,
		models.RegionTypeEconomicZone,
	} {
		if group, ok := groups[t]; ok {
			ordered = append(ordered, *group)
		}
	}
	return ordered
}

// facetTopRegions ranks subregions only by 2025 population. Continents are
// excluded from this view.
func facetTopRegions(joins []regionJoin) []models.TopRegion {
	rows := make([]models.TopRegion, 0, len(joins))
	for _, j := range joins {
		if j.region.Type != models.RegionTypeSubregion {
			continue
		}
		row := models.TopRegion{
			Name:            j.region.Name,
			Type:            j.region.Type,
			TotalPop2025:    j.totalPop2025,
			TotalPop2050:    j.totalPop2050,
			AvgDensity:      j.avgDensity,
			AvgGDP:          j.avgGDP,
			GrowthRate:      j.avgGrowth,
			ProjectedChange: j.totalPop2050 - j.totalPop2025,
		}
		if j.totalPop2025 > 0 {
			pct := (j.totalPop2050 - j.totalPop2025) / j.totalPop2025 * 100
			row.ProjectedPercentChange = &pct
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPop2025 > rows[j].TotalPop2025
	})
	return truncate(rows, comparisonTopLimit)
}

// facetEconomicLeaders ranks all regions by average GDP per capita. Regions
// with no GDP data sort after every region that has some.
func facetEconomicLeaders(joins []regionJoin) []models.EconomicLeader {
	rows := make([]models.EconomicLeader, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, models.EconomicLeader{
			Name:              j.region.Name,
			Type:              j.region.Type,
			AvgGDP:            j.avgGDP,
			AvgLifeExpectancy: j.avgLife,
			CountryCount:      len(j.region.Countries),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		switch {
		case rows[i].AvgGDP == nil:
			return false
		case rows[j].AvgGDP == nil:
			return true
		default:
			return *rows[i].AvgGDP > *rows[j].AvgGDP
		}
	})
	return truncate(rows, comparisonTopLimit)
}
