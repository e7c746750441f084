// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package models

// This file contains the result documents for the six analytics procedures.
// Field names track the JSON consumed by the map client. Pointer fields
// carry the null-propagation policy: a nil average means no contributing
// value was present, never that the inputs summed to zero.

// HighGrowthCountry is one entry in the high-growth ranking, carrying the
// country's identity, growth figures, and its most recent economic snapshot
// (nil when the country has no economic data at all).
type HighGrowthCountry struct {
	Country      string             `json:"country"`
	CCA3         string             `json:"cca3"`
	GrowthRate   *float64           `json:"growthRate"`
	Pop2025      *float64           `json:"pop2025"`
	Pop2050      *float64           `json:"pop2050"`
	EconomicData *EconomicIndicator `json:"economicData"`
}

// HighGrowthResult is the output of the High-Growth-With-Economics procedure.
type HighGrowthResult struct {
	AvgGrowthRate       float64             `json:"avgGrowthRate"`
	HighGrowthCountries []HighGrowthCountry `json:"highGrowthCountries"`
}

// RegionAnalysis is one region's live-computed aggregate row. Totals are
// count-based sums (absent members contribute zero); averages are pooled
// means over present values only.
type RegionAnalysis struct {
	Name                string     `json:"name"`
	Type                RegionType `json:"type"`
	CountryCount        int        `json:"countryCount"`
	TotalPopulation2025 float64    `json:"totalPopulation2025"`
	TotalPopulation2050 float64    `json:"totalPopulation2050"`
	AvgDensity          *float64   `json:"avgDensity"`
	AvgGrowthRate       *float64   `json:"avgGrowthRate"`
	AvgGDPPerCapita     *float64   `json:"avgGDPPerCapita"`
	AvgLifeExpectancy   *float64   `json:"avgLifeExpectancy"`
	AvgUrbanization     *float64   `json:"avgUrbanization"`
	TotalGDP            float64    `json:"totalGDP"`
	ProjectedGrowth     float64    `json:"projectedGrowth"`
}

// OvercrowdedCountry is one entry in the overcrowding ranking: a dense
// country whose reference-year economy is either confirmed poor or unknown.
// OvercrowdingIndex divides density by GDP per capita, substituting 1 when
// GDP is unknown so the index stays numeric for missing-data countries.
type OvercrowdedCountry struct {
	Country         string   `json:"country"`
	CCA3            string   `json:"cca3"`
	Density         *float64 `json:"density"`
	Pop2025         *float64 `json:"pop2025"`
	Pop2050         *float64 `json:"pop2050"`
	GrowthRate      *float64 `json:"growthRate"`
	WorldPercentage *float64 `json:"worldPercentage"`
	Area            *float64 `json:"area"`
	LandAreaKm      *float64 `json:"landAreaKm"`

	// Primary economic indicators.
	GDPPerCapita   *float64 `json:"gdpPerCapita"`
	LifeExpectancy *float64 `json:"lifeExpectancy"`

	// Secondary indicators, rendered by the client when the primary ones
	// are missing.
	GDPTotal         *float64 `json:"gdpTotal"`
	GiniCoefficient  *float64 `json:"giniCoefficient"`
	UnemploymentRate *float64 `json:"unemploymentRate"`
	UrbanizationRate *float64 `json:"urbanizationRate"`
	LiteracyRate     *float64 `json:"literacyRate"`

	OvercrowdingIndex float64 `json:"overcrowdingIndex"`
}

// ProjectionCountry is one country's 2025->2050 projection row.
type ProjectionCountry struct {
	Country         string   `json:"country"`
	CCA3            string   `json:"cca3"`
	Pop2025         *float64 `json:"pop2025"`
	Pop2050         *float64 `json:"pop2050"`
	GrowthRate      *float64 `json:"growthRate"`
	Density         *float64 `json:"density"`
	WorldPercentage *float64 `json:"worldPercentage"`
	Change          *float64 `json:"change"`
	PercentChange   *float64 `json:"percentChange"`
}

// ProjectionSummary carries the global projection aggregates.
type ProjectionSummary struct {
	AvgGrowthRate    *float64 `json:"avgGrowthRate"`
	AvgPercentChange *float64 `json:"avgPercentChange"`
	TotalPop2025     float64  `json:"totalPop2025"`
	TotalPop2050     float64  `json:"totalPop2050"`
	ProjectedChange  float64  `json:"projectedChange"`
}

// ProjectionMoversResult is the output of the Projection-Movers procedure.
type ProjectionMoversResult struct {
	Summary      ProjectionSummary   `json:"summary"`
	TopGainers   []ProjectionCountry `json:"topGainers"`
	TopDecliners []ProjectionCountry `json:"topDecliners"`
}

// CorrelationCountry is a country joined with its most recent economic
// snapshot, as used by the correlation rankings. BalanceScore is only set
// for entries in the best-balance ranking.
type CorrelationCountry struct {
	Country          string   `json:"country"`
	CCA3             string   `json:"cca3"`
	Density          *float64 `json:"density"`
	GrowthRate       *float64 `json:"growthRate"`
	Pop2025          *float64 `json:"pop2025"`
	GDPPerCapita     *float64 `json:"gdpPerCapita"`
	LifeExpectancy   *float64 `json:"lifeExpectancy"`
	UrbanizationRate *float64 `json:"urbanizationRate"`
	BalanceScore     *float64 `json:"balanceScore,omitempty"`
}

// CorrelationSummary carries rounded pooled means over joined countries.
type CorrelationSummary struct {
	AvgDensity        *float64 `json:"avgDensity"`
	AvgGDPPerCapita   *float64 `json:"avgGDPPerCapita"`
	AvgGrowthRate     *float64 `json:"avgGrowthRate"`
	AvgLifeExpectancy *float64 `json:"avgLifeExpectancy"`
	AvgUrbanization   *float64 `json:"avgUrbanization"`
}

// CorrelationInsights counts countries by GDP/density quadrant relative to
// the computed means. Countries missing either field belong to neither count.
type CorrelationInsights struct {
	HighGDPHighDensity int `json:"highGDPHighDensity"`
	LowGDPHighDensity  int `json:"lowGDPHighDensity"`
}

// CorrelationTopPerformers holds the three top-5 rankings.
type CorrelationTopPerformers struct {
	HighGDP     []CorrelationCountry `json:"highGDP"`
	HighDensity []CorrelationCountry `json:"highDensity"`
	BestBalance []CorrelationCountry `json:"bestBalance"`
}

// CorrelationResult is the output of the Economic-Population-Correlation
// procedure.
type CorrelationResult struct {
	Summary       CorrelationSummary       `json:"summary"`
	Insights      CorrelationInsights      `json:"insights"`
	TopPerformers CorrelationTopPerformers `json:"topPerformers"`
}

// ComparisonRegion is one region row inside a byType group.
type ComparisonRegion struct {
	Name         string   `json:"name"`
	CountryCount int      `json:"countryCount"`
	TotalPop2025 float64  `json:"totalPop2025"`
	TotalPop2050 float64  `json:"totalPop2050"`
	AvgDensity   *float64 `json:"avgDensity"`
	AvgGDP       *float64 `json:"avgGDP"`
}

// RegionTypeGroup groups regions of one type with its type-level summary.
type RegionTypeGroup struct {
	Type           RegionType         `json:"type"`
	Regions        []ComparisonRegion `json:"regions"`
	TotalRegions   int                `json:"totalRegions"`
	TotalCountries int                `json:"totalCountries"`
	GlobalPop2025  float64            `json:"globalPop2025"`
	GlobalPop2050  float64            `json:"globalPop2050"`
}

// TopRegion is one subregion in the population ranking with its projected
// absolute and percentage change.
type TopRegion struct {
	Name                   string     `json:"name"`
	Type                   RegionType `json:"type"`
	TotalPop2025           float64    `json:"totalPop2025"`
	TotalPop2050           float64    `json:"totalPop2050"`
	AvgDensity             *float64   `json:"avgDensity"`
	AvgGDP                 *float64   `json:"avgGDP"`
	GrowthRate             *float64   `json:"growthRate"`
	ProjectedChange        float64    `json:"projectedChange"`
	ProjectedPercentChange *float64   `json:"projectedPercentChange"`
}

// EconomicLeader is one region in the GDP-per-capita ranking.
type EconomicLeader struct {
	Name              string     `json:"name"`
	Type              RegionType `json:"type"`
	AvgGDP            *float64   `json:"avgGDP"`
	AvgLifeExpectancy *float64   `json:"avgLifeExpectancy"`
	CountryCount      int        `json:"countryCount"`
}

// RegionalComparisonResult is the faceted output of the Regional-Comparison
// procedure: three independent views computed from one region join.
type RegionalComparisonResult struct {
	ByType          []RegionTypeGroup `json:"byType"`
	TopRegions      []TopRegion       `json:"topRegions"`
	EconomicLeaders []EconomicLeader  `json:"economicLeaders"`
}
