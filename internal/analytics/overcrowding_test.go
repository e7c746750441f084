// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package analytics

import (
	"context"
	"fmt"
	"testing"

	"github.com/populytics/populytics/internal/models"
)

func defaultOvercrowdingParams() OvercrowdingParams {
	return OvercrowdingParams{DensityThreshold: 300, GDPThreshold: 5000}
}

func TestOvercrowdingMissingSnapshotIncluded(t *testing.T) {
	store := &fakeStore{
		countries: []models.Country{
			{CCA3: "ZZZ", Country: "Z", Density: fptr(400), Pop2025: fptr(1000)},
		},
	}
	engine := newTestEngine(store)

	result, err := engine.Overcrowding(context.Background(), defaultOvercrowdingParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected Z included with no snapshot, got %d rows", len(result))
	}
	if result[0].GDPPerCapita != nil {
		t.Errorf("expected nil gdpPerCapita, got %v", *result[0].GDPPerCapita)
	}
	if result[0].OvercrowdingIndex != 400 {
		t.Errorf("expected index density/1 = 400, got %g", result[0].OvercrowdingIndex)
	}
}

func TestOvercrowdingFilters(t *testing.T) {
	refYear := 2024
	store := &fakeStore{
		countries: []models.Country{
			{CCA3: "POO", Country: "Poor and dense", Density: fptr(500)},
			{CCA3: "RIC", Country: "Rich and dense", Density: fptr(600)},
			{CCA3: "SPA", Country: "Sparse", Density: fptr(100)},
			{CCA3: "OLD", Country: "Off-year data only", Density: fptr(450)},
			{CCA3: "EDG", Country: "At the threshold", Density: fptr(300)},
			{CCA3: "NUL", Country: "Snapshot without GDP", Density: fptr(480)},
		},
		indicators: []models.EconomicIndicator{
			{CountryCode: "POO", Year: refYear, GDPPerCapita: fptr(1200), LifeExpectancy: fptr(55)},
			{CountryCode: "RIC", Year: refYear, GDPPerCapita: fptr(45000)},
			// OLD has data, just not for the reference year. Fixed-year
			// resolution must not fall back to it, so OLD counts as
			// data-missing and is included.
			{CountryCode: "OLD", Year: refYear - 1, GDPPerCapita: fptr(40000)},
			// NUL has a reference-year snapshot whose gdpPerCapita is null.
			// The null comparison propagates to false, so NUL is excluded.
			{CountryCode: "NUL", Year: refYear, LifeExpectancy: fptr(70)},
		},
	}
	engine := newTestEngine(store)

	result, err := engine.Overcrowding(context.Background(), defaultOvercrowdingParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make(map[string]models.OvercrowdedCountry, len(result))
	for _, row := range result {
		got[row.CCA3] = row
	}
	if _, ok := got["POO"]; !ok {
		t.Error("expected POO (low GDP) included")
	}
	if _, ok := got["OLD"]; !ok {
		t.Error("expected OLD (no reference-year snapshot) included")
	}
	if _, ok := got["RIC"]; ok {
		t.Error("expected RIC (high GDP) excluded")
	}
	if _, ok := got["SPA"]; ok {
		t.Error("expected SPA (low density) excluded")
	}
	if _, ok := got["EDG"]; ok {
		t.Error("expected EDG excluded, density threshold is strict")
	}
	if _, ok := got["NUL"]; ok {
		t.Error("expected NUL excluded, null GDP in a present snapshot does not compare below the threshold")
	}

	if poo := got["POO"]; poo.OvercrowdingIndex != 500.0/1200.0 {
		t.Errorf("expected index 500/1200, got %g", poo.OvercrowdingIndex)
	}
	if old := got["OLD"]; old.OvercrowdingIndex != 450 {
		t.Errorf("expected index 450 with sentinel denominator, got %g", old.OvercrowdingIndex)
	}
	// Densest first.
	if len(result) != 2 || result[0].CCA3 != "POO" {
		t.Errorf("expected POO first by density, got %+v", result)
	}
}

func TestOvercrowdingTruncation(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 25; i++ {
		store.countries = append(store.countries, models.Country{
			CCA3:    fmt.Sprintf("C%02d", i),
			Country: "C",
			Density: fptr(400 + float64(i)),
		})
	}
	engine := newTestEngine(store)

	result, err := engine.Overcrowding(context.Background(), defaultOvercrowdingParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 15 {
		t.Errorf("expected exactly 15 rows, got %d", len(result))
	}
	if *result[0].Density != 424 {
		t.Errorf("expected densest country first, got %g", *result[0].Density)
	}
}

func TestOvercrowdingCustomThresholds(t *testing.T) {
	store := &fakeStore{
		countries: []models.Country{
			{CCA3: "AAA", Country: "A", Density: fptr(250)},
		},
		indicators: []models.EconomicIndicator{
			{CountryCode: "AAA", Year: 2024, GDPPerCapita: fptr(8000)},
		},
	}
	engine := newTestEngine(store)

	result, err := engine.Overcrowding(context.Background(), OvercrowdingParams{
		DensityThreshold: 200,
		GDPThreshold:     10000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("expected AAA included under relaxed thresholds, got %d rows", len(result))
	}
}
