// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package analytics

import "math"

// meanAcc accumulates a pooled mean: nil inputs are excluded from both the
// sum and the count, so an all-nil series yields a nil mean rather than zero.
type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v *float64) {
	if v == nil {
		return
	}
	a.sum += *v
	a.n++
}

func (a *meanAcc) addValue(v float64) {
	a.sum += v
	a.n++
}

// mean returns the pooled mean, or nil when no value contributed.
func (a *meanAcc) mean() *float64 {
	if a.n == 0 {
		return nil
	}
	m := a.sum / float64(a.n)
	return &m
}

// meanOr returns the pooled mean, or fallback when no value contributed.
func (a *meanAcc) meanOr(fallback float64) float64 {
	if m := a.mean(); m != nil {
		return *m
	}
	return fallback
}

// sumAcc accumulates a count-based sum: nil inputs contribute zero.
type sumAcc struct {
	total float64
}

func (a *sumAcc) add(v *float64) {
	if v != nil {
		a.total += *v
	}
}

// roundTo rounds half away from zero at the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// roundPtr rounds a nullable value in place, propagating nil.
func roundPtr(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	r := roundTo(*v, places)
	return &r
}

// deref returns the pointed-to value, or fallback for nil.
func deref(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// truncate caps a slice length without copying.
func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
