// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package analytics

import (
	"context"

	"github.com/populytics/populytics/internal/logging"
	"github.com/populytics/populytics/internal/models"
)

// SnapshotPolicy selects which economic indicator row represents a country
// when a procedure needs exactly one.
type SnapshotPolicy struct {
	// FixedYear, when non-zero, requires an exact year match with no
	// fallback. Zero means most-recent: highest year wins.
	FixedYear int
}

// MostRecent selects the highest-year row per country.
func MostRecent() SnapshotPolicy { return SnapshotPolicy{} }

// FixedYear selects only rows observed in the given year.
func FixedYear(year int) SnapshotPolicy { return SnapshotPolicy{FixedYear: year} }

// snapshotIndex maps country code to its resolved snapshot. Absence from the
// map means the country has no indicator row matching the policy.
type snapshotIndex map[string]models.EconomicIndicator

// buildSnapshotIndex resolves one snapshot per country from the full
// indicator set. Two rows sharing a (country, year) pair are a data
// integrity violation: the first row scanned wins and the collision is
// logged.
func buildSnapshotIndex(ctx context.Context, indicators []models.EconomicIndicator, policy SnapshotPolicy) snapshotIndex {
	index := make(snapshotIndex)
	for _, ind := range indicators {
		if policy.FixedYear != 0 && ind.Year != policy.FixedYear {
			continue
		}
		current, seen := index[ind.CountryCode]
		if !seen {
			index[ind.CountryCode] = ind
			continue
		}
		if ind.Year == current.Year {
			logging.Ctx(ctx).Warn().
				Str("country_code", ind.CountryCode).
				Int("year", ind.Year).
				Msg("Duplicate economic indicator year, keeping first row")
			continue
		}
		if policy.FixedYear == 0 && ind.Year > current.Year {
			index[ind.CountryCode] = ind
		}
	}
	return index
}

// get returns the snapshot for code as a pointer, or nil when none matched
// the policy.
func (s snapshotIndex) get(code string) *models.EconomicIndicator {
	if snap, ok := s[code]; ok {
		return &snap
	}
	return nil
}
