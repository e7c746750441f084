// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/populytics/populytics/internal/logging"
	"github.com/populytics/populytics/internal/models"
)

// Store is the write surface the seeder needs. *database.DB satisfies it.
type Store interface {
	GetCountrySummary(ctx context.Context) (models.CountrySummary, error)
	InsertCountry(ctx context.Context, c models.Country) error
	InsertIndicator(ctx context.Context, ind models.EconomicIndicator) error
	InsertRegion(ctx context.Context, r models.Region) error
	RefreshRegionRollups(ctx context.Context) (int, error)
}

// Seeder populates an empty store from CSV files in a seed directory.
type Seeder struct {
	store   Store
	seedDir string
}

// NewSeeder creates a seeder reading from seedDir.
func NewSeeder(store Store, seedDir string) *Seeder {
	return &Seeder{store: store, seedDir: seedDir}
}

// SeedIfEmpty loads countries.csv and economic_indicators.csv when the
// store holds no countries yet, derives regions from the grouping columns,
// and refreshes the region rollups. A populated store or an unset seed
// directory is a no-op.
func (s *Seeder) SeedIfEmpty(ctx context.Context) error {
	if s.seedDir == "" {
		return nil
	}
	summary, err := s.store.GetCountrySummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to check store population: %w", err)
	}
	if summary.TotalCountries > 0 {
		logging.Debug().Int("countries", summary.TotalCountries).Msg("Store already seeded, skipping")
		return nil
	}

	countriesPath := filepath.Join(s.seedDir, "countries.csv")
	f, err := os.Open(countriesPath)
	if os.IsNotExist(err) {
		logging.Warn().Str("path", countriesPath).Msg("No seed file found, starting with an empty store")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", countriesPath, err)
	}
	rows, err := ParseCountries(f)
	f.Close()
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := s.store.InsertCountry(ctx, row.Country); err != nil {
			return fmt.Errorf("failed to seed country %s: %w", row.CCA3, err)
		}
	}
	logging.Info().Int("countries", len(rows)).Msg("Seeded countries")

	if err := s.seedIndicators(ctx); err != nil {
		return err
	}

	regions := DeriveRegions(rows)
	for _, region := range regions {
		if err := s.store.InsertRegion(ctx, region); err != nil {
			return fmt.Errorf("failed to seed region %s: %w", region.Name, err)
		}
	}
	logging.Info().Int("regions", len(regions)).Msg("Derived and seeded regions")

	updated, err := s.store.RefreshRegionRollups(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh rollups after seeding: %w", err)
	}
	logging.Info().Int("regions", updated).Msg("Computed initial region rollups")
	return nil
}

func (s *Seeder) seedIndicators(ctx context.Context) error {
	path := filepath.Join(s.seedDir, "economic_indicators.csv")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		logging.Warn().Str("path", path).Msg("No indicator seed file found")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	indicators, err := ParseIndicators(f)
	if err != nil {
		return err
	}
	for _, ind := range indicators {
		if err := s.store.InsertIndicator(ctx, ind); err != nil {
			return fmt.Errorf("failed to seed indicator %s/%d: %w", ind.CountryCode, ind.Year, err)
		}
	}
	logging.Info().Int("indicators", len(indicators)).Msg("Seeded economic indicators")
	return nil
}
