// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/populytics/populytics/internal/config"
	"github.com/populytics/populytics/internal/models"
)

// newTestDB creates an in-memory store for one test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{
		Path:                   ":memory:",
		MaxMemory:              "512MB",
		Threads:                2,
		PreserveInsertionOrder: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testCountry(cca3, name string, pop2025, density, growthRate float64) models.Country {
	return models.Country{
		CCA3:       cca3,
		Country:    name,
		Pop2025:    models.Float64Ptr(pop2025),
		Pop2050:    models.Float64Ptr(pop2025 * 1.2),
		Density:    models.Float64Ptr(density),
		GrowthRate: models.Float64Ptr(growthRate),
	}
}

func TestCountryCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := testCountry("KEN", "Kenya", 57_000_000, 100, 0.019)
	c.CCA2 = "KE"
	c.Rank = models.IntPtr(27)
	if err := db.InsertCountry(ctx, c); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := db.GetCountry(ctx, "KEN")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Country != "Kenya" || got.CCA2 != "KE" {
		t.Errorf("unexpected country: %+v", got)
	}
	if got.Pop2025 == nil || *got.Pop2025 != 57_000_000 {
		t.Errorf("expected pop2025 57M, got %v", got.Pop2025)
	}
	if got.Rank == nil || *got.Rank != 27 {
		t.Errorf("expected rank 27, got %v", got.Rank)
	}
	if got.WorldPercentage != nil {
		t.Errorf("expected nil worldPercentage, got %v", *got.WorldPercentage)
	}

	got.Country = "Republic of Kenya"
	if err := db.UpdateCountry(ctx, got); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	updated, err := db.GetCountry(ctx, "KEN")
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if updated.Country != "Republic of Kenya" {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := db.DeleteCountry(ctx, "KEN"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := db.GetCountry(ctx, "KEN"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpdateDeleteMissingCountry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.UpdateCountry(ctx, testCountry("XXX", "Nowhere", 1, 1, 0)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}
	if err := db.DeleteCountry(ctx, "XXX"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestListCountriesOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, c := range []models.Country{
		testCountry("NGA", "Nigeria", 238_000_000, 260, 0.024),
		testCountry("BGD", "Bangladesh", 174_000_000, 1338, 0.012),
		testCountry("KEN", "Kenya", 57_000_000, 100, 0.019),
	} {
		if err := db.InsertCountry(ctx, c); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	countries, err := db.ListCountries(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(countries) != 3 {
		t.Fatalf("expected 3 countries, got %d", len(countries))
	}
	if countries[0].CCA3 != "BGD" || countries[2].CCA3 != "NGA" {
		t.Errorf("expected cca3 ordering, got %s..%s", countries[0].CCA3, countries[2].CCA3)
	}
}

func TestIndicatorFiltersAndOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, ind := range []models.EconomicIndicator{
		{CountryCode: "KEN", Year: 2022, GDPPerCapita: models.Float64Ptr(2000)},
		{CountryCode: "KEN", Year: 2024, GDPPerCapita: models.Float64Ptr(2200)},
		{CountryCode: "KEN", Year: 2023, GDPPerCapita: models.Float64Ptr(2100)},
		{CountryCode: "NGA", Year: 2024, GDPPerCapita: models.Float64Ptr(1600)},
	} {
		if err := db.InsertIndicator(ctx, ind); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	kenAll, err := db.ListIndicatorsByCountry(ctx, "ken")
	if err != nil {
		t.Fatalf("list by country failed: %v", err)
	}
	if len(kenAll) != 3 {
		t.Fatalf("expected 3 KEN rows, got %d", len(kenAll))
	}
	if kenAll[0].Year != 2024 || kenAll[2].Year != 2022 {
		t.Errorf("expected year-descending order, got %d..%d", kenAll[0].Year, kenAll[2].Year)
	}

	year2024, err := db.ListIndicators(ctx, IndicatorFilter{Year: 2024})
	if err != nil {
		t.Fatalf("list by year failed: %v", err)
	}
	if len(year2024) != 2 {
		t.Errorf("expected 2 rows for 2024, got %d", len(year2024))
	}

	both, err := db.ListIndicators(ctx, IndicatorFilter{CountryCode: "KEN", Year: 2023})
	if err != nil {
		t.Fatalf("list by both failed: %v", err)
	}
	if len(both) != 1 || both[0].GDPPerCapita == nil || *both[0].GDPPerCapita != 2100 {
		t.Errorf("unexpected combined filter result: %+v", both)
	}
}

func TestDuplicateIndicatorYearRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	ind := models.EconomicIndicator{CountryCode: "KEN", Year: 2024}
	if err := db.InsertIndicator(ctx, ind); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := db.InsertIndicator(ctx, ind); err == nil {
		t.Error("expected duplicate (country, year) insert to fail")
	}
}

func TestRegionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	region := models.Region{
		Name:      "East Africa",
		Type:      models.RegionTypeSubregion,
		Countries: []string{"KEN", "TZA", "UGA"},
	}
	if err := db.InsertRegion(ctx, region); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := db.GetRegion(ctx, "East Africa")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Type != models.RegionTypeSubregion {
		t.Errorf("expected subregion type, got %s", got.Type)
	}
	if len(got.Countries) != 3 || got.Countries[0] != "KEN" {
		t.Errorf("member list not preserved: %v", got.Countries)
	}

	if _, err := db.GetRegion(ctx, "Atlantis"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCountrySummary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.InsertCountry(ctx, testCountry("AAA", "A", 100, 10, 0.01)); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertCountry(ctx, testCountry("BBB", "B", 300, 30, 0.02)); err != nil {
		t.Fatal(err)
	}
	// A country with no density must not drag the average down.
	noDensity := models.Country{CCA3: "CCC", Country: "C", Pop2025: models.Float64Ptr(50)}
	if err := db.InsertCountry(ctx, noDensity); err != nil {
		t.Fatal(err)
	}

	summary, err := db.GetCountrySummary(ctx)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalCountries != 3 {
		t.Errorf("expected 3 countries, got %d", summary.TotalCountries)
	}
	if summary.TotalPopulation != 450 {
		t.Errorf("expected total population 450, got %g", summary.TotalPopulation)
	}
	if summary.AvgDensity == nil || *summary.AvgDensity != 20 {
		t.Errorf("expected avg density 20 over present values, got %v", summary.AvgDensity)
	}
	if summary.MaxDensity == nil || *summary.MaxDensity != 30 {
		t.Errorf("expected max density 30, got %v", summary.MaxDensity)
	}
}

func TestRefreshRegionRollups(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.InsertCountry(ctx, testCountry("KEN", "Kenya", 100, 40, 0.02)); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertCountry(ctx, testCountry("TZA", "Tanzania", 200, 60, 0.03)); err != nil {
		t.Fatal(err)
	}

	// XYZ is dangling and must be skipped without error.
	region := models.Region{
		Name:      "East Africa",
		Type:      models.RegionTypeSubregion,
		Countries: []string{"KEN", "TZA", "XYZ"},
	}
	if err := db.InsertRegion(ctx, region); err != nil {
		t.Fatal(err)
	}
	// A region with no resolvable members is left unchanged.
	empty := models.Region{
		Name:      "Lost Lands",
		Type:      models.RegionTypeEconomicZone,
		Countries: []string{"QQQ"},
	}
	if err := db.InsertRegion(ctx, empty); err != nil {
		t.Fatal(err)
	}

	updated, err := db.RefreshRegionRollups(ctx)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if updated != 1 {
		t.Errorf("expected 1 region updated, got %d", updated)
	}

	got, err := db.GetRegion(ctx, "East Africa")
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalPopulation2025 == nil || *got.TotalPopulation2025 != 300 {
		t.Errorf("expected total pop 300, got %v", got.TotalPopulation2025)
	}
	if got.AverageDensity == nil || *got.AverageDensity != 50 {
		t.Errorf("expected avg density 50, got %v", got.AverageDensity)
	}

	lost, err := db.GetRegion(ctx, "Lost Lands")
	if err != nil {
		t.Fatal(err)
	}
	if lost.TotalPopulation2025 != nil {
		t.Errorf("expected untouched rollups for empty region, got %v", *lost.TotalPopulation2025)
	}
}
