// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package models

import "time"

// EconomicIndicator is one economic observation for a country in a given
// year. Identity is the (CountryCode, Year) pair; a country may have rows
// for several years with partial field coverage in each.
type EconomicIndicator struct {
	CountryCode           string   `json:"countryCode"`
	Year                  int      `json:"year"`
	GDPPerCapita          *float64 `json:"gdpPerCapita"`
	GDPTotal              *float64 `json:"gdpTotal"`
	HumanDevelopmentIndex *float64 `json:"humanDevelopmentIndex"`
	GiniCoefficient       *float64 `json:"giniCoefficient"`
	UnemploymentRate      *float64 `json:"unemploymentRate"`
	UrbanizationRate      *float64 `json:"urbanizationRate"`
	LifeExpectancy        *float64 `json:"lifeExpectancy"`
	LiteracyRate          *float64 `json:"literacyRate"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
