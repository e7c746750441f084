// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

// Package models defines the persisted entity types (Country, Region,
// EconomicIndicator) and the result documents produced by the analytics
// engine.
//
// All optional numeric fields are pointers: a nil value means the figure is
// unknown and must be excluded from averages rather than treated as zero.
package models

import "time"

// Country holds the demographic record for one sovereign territory.
// CCA3 is the unique join key used by economic indicators and regions.
type Country struct {
	Country         string   `json:"country"`
	CCA2            string   `json:"cca2,omitempty"`
	CCA3            string   `json:"cca3"`
	Pop2025         *float64 `json:"pop2025"`
	Pop2050         *float64 `json:"pop2050"`
	Area            *float64 `json:"area,omitempty"`
	LandAreaKm      *float64 `json:"landAreaKm,omitempty"`
	Density         *float64 `json:"density"`
	GrowthRate      *float64 `json:"growthRate"`
	WorldPercentage *float64 `json:"worldPercentage,omitempty"`
	Rank            *int     `json:"rank,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CountrySummary is the aggregate returned by the country stats endpoint.
type CountrySummary struct {
	TotalCountries  int      `json:"totalCountries"`
	TotalPopulation float64  `json:"totalPopulation"`
	AvgDensity      *float64 `json:"avgDensity"`
	MaxDensity      *float64 `json:"maxDensity"`
	MinDensity      *float64 `json:"minDensity"`
}
