// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package analytics

import (
	"context"
	"testing"

	"github.com/populytics/populytics/internal/models"
)

func TestCorrelationDiscardsUnjoinedCountries(t *testing.T) {
	store := &fakeStore{
		countries: []models.Country{
			{CCA3: "AAA", Country: "A", Density: fptr(100)},
			{CCA3: "BBB", Country: "B", Density: fptr(900)},
		},
		indicators: []models.EconomicIndicator{
			{CountryCode: "AAA", Year: 2024, GDPPerCapita: fptr(2000)},
		},
	}
	engine := newTestEngine(store)

	result, err := engine.Correlation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// BBB has no snapshot at all, so its density must not reach the mean.
	if result.Summary.AvgDensity == nil || *result.Summary.AvgDensity != 100 {
		t.Errorf("expected avg density 100 over joined countries only, got %v", result.Summary.AvgDensity)
	}
	for _, c := range result.TopPerformers.HighDensity {
		if c.CCA3 == "BBB" {
			t.Error("unjoined country leaked into a ranking")
		}
	}
}

func TestCorrelationSummaryRounding(t *testing.T) {
	store := &fakeStore{
		countries: []models.Country{
			{CCA3: "AAA", Country: "A", Density: fptr(123.456), GrowthRate: fptr(0.0123456)},
		},
		indicators: []models.EconomicIndicator{
			{CountryCode: "AAA", Year: 2024, GDPPerCapita: fptr(1234.567), LifeExpectancy: fptr(67.89), UrbanizationRate: fptr(45.678)},
		},
	}
	engine := newTestEngine(store)

	result, err := engine.Correlation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := result.Summary
	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"avgDensity", s.AvgDensity, 123.46},
		{"avgGDPPerCapita", s.AvgGDPPerCapita, 1234.57},
		{"avgGrowthRate", s.AvgGrowthRate, 0.0123},
		{"avgLifeExpectancy", s.AvgLifeExpectancy, 67.9},
		{"avgUrbanization", s.AvgUrbanization, 45.68},
	}
	for _, c := range checks {
		if c.got == nil || *c.got != c.want {
			t.Errorf("%s: expected %g, got %v", c.name, c.want, c.got)
		}
	}
}

func TestCorrelationQuadrantCounts(t *testing.T) {
	store := &fakeStore{
		countries: []models.Country{
			// Means over joined countries: density 220, GDP 10000.
			{CCA3: "RHD", Country: "Rich dense", Density: fptr(300)},
			{CCA3: "PHD", Country: "Poor dense", Density: fptr(300)},
			{CCA3: "RLO", Country: "Rich sparse", Density: fptr(100)},
			{CCA3: "PLO", Country: "Poor sparse", Density: fptr(100)},
			// Dense but GDP unknown: excluded from both buckets.
			{CCA3: "UNK", Country: "Unknown wealth", Density: fptr(300)},
		},
		indicators: []models.EconomicIndicator{
			{CountryCode: "RHD", Year: 2024, GDPPerCapita: fptr(18000)},
			{CountryCode: "PHD", Year: 2024, GDPPerCapita: fptr(2000)},
			{CountryCode: "RLO", Year: 2024, GDPPerCapita: fptr(18000)},
			{CountryCode: "PLO", Year: 2024, GDPPerCapita: fptr(2000)},
			{CountryCode: "UNK", Year: 2024, LifeExpectancy: fptr(70)},
		},
	}
	engine := newTestEngine(store)

	result, err := engine.Correlation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Insights.HighGDPHighDensity != 1 {
		t.Errorf("expected 1 high-GDP high-density country, got %d", result.Insights.HighGDPHighDensity)
	}
	if result.Insights.LowGDPHighDensity != 1 {
		t.Errorf("expected 1 low-GDP high-density country, got %d", result.Insights.LowGDPHighDensity)
	}
}

func TestCorrelationTopPerformers(t *testing.T) {
	store := &fakeStore{
		countries: []models.Country{
			{CCA3: "AAA", Country: "A", Density: fptr(50)},
			{CCA3: "BBB", Country: "B", Density: fptr(500)},
			{CCA3: "CCC", Country: "C", Density: nil},
		},
		indicators: []models.EconomicIndicator{
			{CountryCode: "AAA", Year: 2024, GDPPerCapita: fptr(60000)},
			{CountryCode: "BBB", Year: 2024, GDPPerCapita: fptr(3000)},
			{CountryCode: "CCC", Year: 2024, GDPPerCapita: fptr(90000)},
		},
	}
	engine := newTestEngine(store)

	result, err := engine.Correlation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top := result.TopPerformers

	if len(top.HighGDP) != 3 || top.HighGDP[0].CCA3 != "CCC" {
		t.Errorf("expected CCC leading highGDP, got %+v", top.HighGDP)
	}
	// CCC has no density: out of the density and balance rankings, but it
	// stays in the GDP ranking.
	if len(top.HighDensity) != 2 || top.HighDensity[0].CCA3 != "BBB" {
		t.Errorf("expected BBB leading highDensity without CCC, got %+v", top.HighDensity)
	}
	if len(top.BestBalance) != 2 || top.BestBalance[0].CCA3 != "AAA" {
		t.Errorf("expected AAA leading bestBalance, got %+v", top.BestBalance)
	}
	want := 60000.0 / 51.0
	if top.BestBalance[0].BalanceScore == nil || *top.BestBalance[0].BalanceScore != want {
		t.Errorf("expected balance score %g, got %v", want, top.BestBalance[0].BalanceScore)
	}
	// Rankings outside bestBalance carry no score.
	if top.HighGDP[0].BalanceScore != nil {
		t.Error("expected nil balanceScore outside the balance ranking")
	}
}
