// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/populytics/populytics/internal/models"
)

const countriesCSV = `country,cca2,cca3,pop2025,pop2050,density,growthRate,continent,subregion
Kenya,KE,ken,57000000,85000000,100,0.019,Africa,East Africa
Tanzania,TZ,TZA,68000000,,80,,Africa,East Africa
Germany,DE,DEU,84000000,80000000,240,-0.001,Europe,Western Europe
,,,,,,,,
`

const indicatorsCSV = `countryCode,year,gdpPerCapita,lifeExpectancy
KEN,2024,2046,66.7
TZA,2024,,66.2
DEU,not-a-year,51429,81.3
`

func TestParseCountries(t *testing.T) {
	rows, err := ParseCountries(strings.NewReader(countriesCSV))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (blank cca3 skipped), got %d", len(rows))
	}

	ken := rows[0]
	if ken.CCA3 != "KEN" {
		t.Errorf("expected uppercased cca3, got %s", ken.CCA3)
	}
	if ken.Pop2025 == nil || *ken.Pop2025 != 57000000 {
		t.Errorf("unexpected pop2025: %v", ken.Pop2025)
	}
	if ken.Continent != "Africa" || ken.Subregion != "East Africa" {
		t.Errorf("grouping columns not captured: %+v", ken)
	}

	tza := rows[1]
	if tza.Pop2050 != nil {
		t.Errorf("blank cell must parse to nil, got %v", *tza.Pop2050)
	}
	if tza.GrowthRate != nil {
		t.Errorf("blank growth rate must parse to nil, got %v", *tza.GrowthRate)
	}
}

func TestParseIndicators(t *testing.T) {
	indicators, err := ParseIndicators(strings.NewReader(indicatorsCSV))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(indicators) != 2 {
		t.Fatalf("expected 2 rows (bad year skipped), got %d", len(indicators))
	}
	if indicators[0].CountryCode != "KEN" || indicators[0].Year != 2024 {
		t.Errorf("unexpected first row: %+v", indicators[0])
	}
	if indicators[1].GDPPerCapita != nil {
		t.Errorf("blank GDP must parse to nil, got %v", *indicators[1].GDPPerCapita)
	}
}

func TestDeriveRegions(t *testing.T) {
	rows, err := ParseCountries(strings.NewReader(countriesCSV))
	if err != nil {
		t.Fatal(err)
	}
	regions := DeriveRegions(rows)

	byName := make(map[string]models.Region, len(regions))
	for _, r := range regions {
		byName[r.Name] = r
	}

	africa, ok := byName["Africa"]
	if !ok || africa.Type != models.RegionTypeContinent {
		t.Fatalf("expected Africa continent, got %+v", africa)
	}
	if len(africa.Countries) != 2 {
		t.Errorf("expected KEN and TZA in Africa, got %v", africa.Countries)
	}

	east, ok := byName["East Africa"]
	if !ok || east.Type != models.RegionTypeSubregion {
		t.Fatalf("expected East Africa subregion, got %+v", east)
	}

	// Continents come before subregions, alphabetical within each level.
	if regions[0].Type != models.RegionTypeContinent {
		t.Errorf("expected continents first, got %+v", regions[0])
	}
}

// fakeSeedStore records inserts in memory.
type fakeSeedStore struct {
	countries  []models.Country
	indicators []models.EconomicIndicator
	regions    []models.Region
	refreshed  int
}

func (f *fakeSeedStore) GetCountrySummary(context.Context) (models.CountrySummary, error) {
	return models.CountrySummary{TotalCountries: len(f.countries)}, nil
}

func (f *fakeSeedStore) InsertCountry(_ context.Context, c models.Country) error {
	f.countries = append(f.countries, c)
	return nil
}

func (f *fakeSeedStore) InsertIndicator(_ context.Context, ind models.EconomicIndicator) error {
	f.indicators = append(f.indicators, ind)
	return nil
}

func (f *fakeSeedStore) InsertRegion(_ context.Context, r models.Region) error {
	f.regions = append(f.regions, r)
	return nil
}

func (f *fakeSeedStore) RefreshRegionRollups(context.Context) (int, error) {
	f.refreshed++
	return len(f.regions), nil
}

func writeSeedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "countries.csv"), []byte(countriesCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "economic_indicators.csv"), []byte(indicatorsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSeedIfEmpty(t *testing.T) {
	store := &fakeSeedStore{}
	seeder := NewSeeder(store, writeSeedDir(t))

	if err := seeder.SeedIfEmpty(context.Background()); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	if len(store.countries) != 3 {
		t.Errorf("expected 3 countries, got %d", len(store.countries))
	}
	if len(store.indicators) != 2 {
		t.Errorf("expected 2 indicators, got %d", len(store.indicators))
	}
	if len(store.regions) == 0 {
		t.Error("expected derived regions")
	}
	if store.refreshed != 1 {
		t.Errorf("expected one rollup refresh, got %d", store.refreshed)
	}
}

func TestSeedSkipsPopulatedStore(t *testing.T) {
	store := &fakeSeedStore{countries: []models.Country{{CCA3: "KEN"}}}
	seeder := NewSeeder(store, writeSeedDir(t))

	if err := seeder.SeedIfEmpty(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.countries) != 1 {
		t.Errorf("populated store must not be reseeded, got %d countries", len(store.countries))
	}
}

func TestSeedMissingDirIsNoop(t *testing.T) {
	store := &fakeSeedStore{}
	seeder := NewSeeder(store, filepath.Join(t.TempDir(), "missing"))

	if err := seeder.SeedIfEmpty(context.Background()); err != nil {
		t.Fatalf("missing seed file must not fail startup: %v", err)
	}
	if len(store.countries) != 0 {
		t.Error("expected no inserts")
	}
}
