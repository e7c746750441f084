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

const overcrowdingLimit = 15

// OvercrowdingParams are the request-tunable thresholds for the
// overcrowding analysis.
type OvercrowdingParams struct {
	// DensityThreshold is the strict people-per-km2 cutoff.
	DensityThreshold float64

	// GDPThreshold is the USD per-capita cutoff below which a dense country
	// counts as underdeveloped.
	GDPThreshold float64
}

// Overcrowding ranks dense countries whose reference-year economy is either
// confirmed below the GDP threshold or unknown. The economic join pins the
// configured reference year so the comparison holds a single year constant
// across countries; a country with data only for other years joins nothing.
func (e *Engine) Overcrowding(ctx context.Context, params OvercrowdingParams) ([]models.OvercrowdedCountry, error) {
	var result []models.OvercrowdedCountry
	err := instrument("overcrowding", func() error {
		var err error
		result, err = e.overcrowding(ctx, params)
		return err
	})
	return result, err
}

func (e *Engine) overcrowding(ctx context.Context, params OvercrowdingParams) ([]models.OvercrowdedCountry, error) {
	countries, err := e.loadCountries(ctx)
	if err != nil {
		return nil, err
	}
	snapshots, err := e.loadSnapshots(ctx, FixedYear(e.referenceYear))
	if err != nil {
		return nil, err
	}

	result := make([]models.OvercrowdedCountry, 0)
	for _, c := range countries {
		if c.Density == nil || *c.Density <= params.DensityThreshold {
			continue
		}
		snap := snapshots.get(c.CCA3)
		if snap != nil && (snap.GDPPerCapita == nil || *snap.GDPPerCapita >= params.GDPThreshold) {
			continue
		}

		row := models.OvercrowdedCountry{
			Country:         c.Country,
			CCA3:            c.CCA3,
			Density:         c.Density,
			Pop2025:         c.Pop2025,
			Pop2050:         c.Pop2050,
			GrowthRate:      c.GrowthRate,
			WorldPercentage: c.WorldPercentage,
			Area:            c.Area,
			LandAreaKm:      c.LandAreaKm,
		}
		if snap != nil {
			row.GDPPerCapita = snap.GDPPerCapita
			row.LifeExpectancy = snap.LifeExpectancy
			row.GDPTotal = snap.GDPTotal
			row.GiniCoefficient = snap.GiniCoefficient
			row.UnemploymentRate = snap.UnemploymentRate
			row.UrbanizationRate = snap.UrbanizationRate
			row.LiteracyRate = snap.LiteracyRate
		}
		// Unknown GDP substitutes 1, the lone exception to null propagation.
		row.OvercrowdingIndex = *c.Density / deref(row.GDPPerCapita, 1)
		result = append(result, row)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return *result[i].Density > *result[j].Density
	})
	return truncate(result, overcrowdingLimit), nil
}
