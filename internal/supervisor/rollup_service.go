// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package supervisor

import (
	"context"
	"time"

	"github.com/populytics/populytics/internal/logging"
	"github.com/populytics/populytics/internal/metrics"
)

// RollupStore recomputes region rollups from member countries.
type RollupStore interface {
	RefreshRegionRollups(ctx context.Context) (int, error)
}

// RollupRefresher periodically recomputes region population rollups so the
// regions table stays consistent with country mutations made outside the API
// (bulk imports, direct DB edits). After each refresh it invalidates the
// analytics cache via onRefresh.
type RollupRefresher struct {
	store     RollupStore
	interval  time.Duration
	onRefresh func()
}

// NewRollupRefresher creates a refresher ticking at interval. onRefresh may
// be nil.
func NewRollupRefresher(store RollupStore, interval time.Duration, onRefresh func()) *RollupRefresher {
	return &RollupRefresher{store: store, interval: interval, onRefresh: onRefresh}
}

// Serve implements suture.Service. A zero or negative interval blocks until
// cancellation so the supervisor does not restart-loop a disabled refresher.
func (r *RollupRefresher) Serve(ctx context.Context) error {
	if r.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refresh(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *RollupRefresher) refresh(ctx context.Context) {
	start := time.Now()
	updated, err := r.store.RefreshRegionRollups(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Region rollup refresh failed")
		return
	}
	metrics.RecordRollupRefresh(time.Since(start), updated)
	if r.onRefresh != nil {
		r.onRefresh()
	}
	logging.Debug().
		Int("regions_updated", updated).
		Dur("duration", time.Since(start)).
		Msg("Region rollups refreshed")
}

// String identifies the service in supervision logs.
func (r *RollupRefresher) String() string { return "rollup-refresher" }
