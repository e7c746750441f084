// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

// Package analytics implements the aggregation procedures behind the
// dashboard: cross-entity joins of countries, regions, and economic
// indicators followed by grouping, ranking, and shaping into the result
// documents in the models package.
//
// The engine is stateless. Every procedure reads a snapshot of the store,
// transforms it in memory, and returns a result document. Procedures never
// mutate the store and are safe to run concurrently.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/populytics/populytics/internal/config"
	"github.com/populytics/populytics/internal/metrics"
	"github.com/populytics/populytics/internal/models"
)

// Store is the read surface the engine needs. *database.DB satisfies it;
// tests substitute an in-memory fake.
type Store interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListRegions(ctx context.Context) ([]models.Region, error)
	ListAllIndicators(ctx context.Context) ([]models.EconomicIndicator, error)
}

// Engine executes the analytical procedures against a Store.
type Engine struct {
	store Store

	// referenceYear pins the fixed-year snapshot policy used by the
	// overcrowding and regional comparison procedures.
	referenceYear int
}

// New creates an engine bound to the given store.
func New(store Store, cfg *config.AnalyticsConfig) *Engine {
	return &Engine{
		store:         store,
		referenceYear: cfg.ReferenceYear,
	}
}

// loadCountries fetches all countries, wrapping store failures.
func (e *Engine) loadCountries(ctx context.Context) ([]models.Country, error) {
	countries, err := e.store.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}
	return countries, nil
}

// loadRegions fetches all regions, wrapping store failures.
func (e *Engine) loadRegions(ctx context.Context) ([]models.Region, error) {
	regions, err := e.store.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load regions: %w", err)
	}
	return regions, nil
}

// loadSnapshots fetches all indicators and resolves them to one snapshot per
// country under the given policy.
func (e *Engine) loadSnapshots(ctx context.Context, policy SnapshotPolicy) (snapshotIndex, error) {
	indicators, err := e.store.ListAllIndicators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load economic indicators: %w", err)
	}
	return buildSnapshotIndex(ctx, indicators, policy), nil
}

// countryIndex maps countries by their cca3 join key. Rows without a code
// cannot participate in joins and are skipped.
func countryIndex(countries []models.Country) map[string]models.Country {
	byCode := make(map[string]models.Country, len(countries))
	for _, c := range countries {
		if c.CCA3 == "" {
			continue
		}
		byCode[c.CCA3] = c
	}
	return byCode
}

// instrument wraps a procedure invocation with duration and error metrics.
func instrument(procedure string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordProcedure(procedure, time.Since(start), err)
	return err
}
