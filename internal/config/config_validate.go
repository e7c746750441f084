// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package config

import (
	"fmt"
)

// Validate checks the configuration for values that would prevent the server
// from starting or produce nonsensical analytics.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.API.CacheTTL < 0 {
		return fmt.Errorf("api.cache_ttl must not be negative, got %s", c.API.CacheTTL)
	}
	if c.Analytics.DensityThreshold <= 0 {
		return fmt.Errorf("analytics.density_threshold must be positive, got %g", c.Analytics.DensityThreshold)
	}
	if c.Analytics.GDPPerCapitaThreshold <= 0 {
		return fmt.Errorf("analytics.gdp_per_capita_threshold must be positive, got %g", c.Analytics.GDPPerCapitaThreshold)
	}
	if c.Analytics.ReferenceYear < 1900 || c.Analytics.ReferenceYear > 2200 {
		return fmt.Errorf("analytics.reference_year out of range: %d", c.Analytics.ReferenceYear)
	}
	if c.Analytics.RollupRefreshInterval < 0 {
		return fmt.Errorf("analytics.rollup_refresh_interval must not be negative, got %s", c.Analytics.RollupRefreshInterval)
	}
	return nil
}
