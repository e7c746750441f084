// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package ingest

import (
	"sort"

	"github.com/populytics/populytics/internal/models"
)

// DeriveRegions groups country codes by their continent and subregion
// columns into Region records. Countries with a blank grouping column are
// left out of that grouping level. Output order is deterministic:
// continents first, then subregions, each alphabetical.
func DeriveRegions(rows []CountryRow) []models.Region {
	continents := make(map[string][]string)
	subregions := make(map[string][]string)
	for _, row := range rows {
		if row.Continent != "" {
			continents[row.Continent] = append(continents[row.Continent], row.CCA3)
		}
		if row.Subregion != "" {
			subregions[row.Subregion] = append(subregions[row.Subregion], row.CCA3)
		}
	}

	regions := make([]models.Region, 0, len(continents)+len(subregions))
	for _, name := range sortedKeys(continents) {
		regions = append(regions, models.Region{
			Name:      name,
			Type:      models.RegionTypeContinent,
			Countries: continents[name],
		})
	}
	for _, name := range sortedKeys(subregions) {
		regions = append(regions, models.Region{
			Name:      name,
			Type:      models.RegionTypeSubregion,
			Countries: subregions[name],
		})
	}
	return regions
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
