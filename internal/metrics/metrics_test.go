// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQueryErrorCounting(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "countries"))

	RecordDBQuery("select", "countries", 5*time.Millisecond, nil)
	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "countries"))
	if after != before {
		t.Errorf("successful query must not increment error counter: %g -> %g", before, after)
	}

	RecordDBQuery("select", "countries", 5*time.Millisecond, errors.New("boom"))
	after = testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "countries"))
	if after != before+1 {
		t.Errorf("failed query must increment error counter: %g -> %g", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("expected gauge %g, got %g", base+1, got)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("expected gauge %g, got %g", base, got)
	}
}

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits)
	misses := testutil.ToFloat64(CacheMisses)

	RecordCacheHit()
	RecordCacheMiss()

	if got := testutil.ToFloat64(CacheHits); got != hits+1 {
		t.Errorf("expected %g cache hits, got %g", hits+1, got)
	}
	if got := testutil.ToFloat64(CacheMisses); got != misses+1 {
		t.Errorf("expected %g cache misses, got %g", misses+1, got)
	}
}

func TestRecordProcedure(t *testing.T) {
	before := testutil.ToFloat64(AnalyticsProcedureErrors.WithLabelValues("regional-analysis"))

	RecordProcedure("regional-analysis", 10*time.Millisecond, nil)
	RecordProcedure("regional-analysis", 10*time.Millisecond, errors.New("store unavailable"))

	after := testutil.ToFloat64(AnalyticsProcedureErrors.WithLabelValues("regional-analysis"))
	if after != before+1 {
		t.Errorf("expected one new procedure error, got %g -> %g", before, after)
	}
}
