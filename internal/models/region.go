// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package models

import "time"

// RegionType enumerates the kinds of geographic or economic groupings.
type RegionType string

const (
	RegionTypeContinent    RegionType = "continent"
	RegionTypeSubregion    RegionType = "subregion"
	RegionTypeEconomicZone RegionType = "economic_zone"
)

// Valid reports whether t is one of the known region types.
func (t RegionType) Valid() bool {
	switch t {
	case RegionTypeContinent, RegionTypeSubregion, RegionTypeEconomicZone:
		return true
	}
	return false
}

// Region is a named grouping of countries by CCA3 code. The rollup fields
// are cached figures maintained by the batch refresher; the analytics engine
// always recomputes them live from member countries and never reads the
// cached values.
type Region struct {
	Name      string     `json:"name"`
	Type      RegionType `json:"type"`
	Countries []string   `json:"countries"`

	TotalPopulation2025 *float64 `json:"totalPopulation2025,omitempty"`
	TotalPopulation2050 *float64 `json:"totalPopulation2050,omitempty"`
	AverageDensity      *float64 `json:"averageDensity,omitempty"`
	AverageGrowthRate   *float64 `json:"averageGrowthRate,omitempty"`
	TotalArea           *float64 `json:"totalArea,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
