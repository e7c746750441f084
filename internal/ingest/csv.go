// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

// Package ingest loads seed data into the store: CSV parsing for country
// and economic indicator files, region derivation from per-country
// continent and subregion columns, and the seed-on-empty startup path.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/populytics/populytics/internal/models"
)

// CountryRow is one parsed line of countries.csv: the country record plus
// the grouping columns used to derive regions.
type CountryRow struct {
	models.Country
	Continent string
	Subregion string
}

// header maps column names to positions, case-insensitively.
type header map[string]int

func parseHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

func (h header) str(record []string, name string) string {
	idx, ok := h[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// float returns nil for blank or unparseable cells. Absent data must stay
// absent so averages exclude it.
func (h header) float(record []string, name string) *float64 {
	raw := h.str(record, name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (h header) int(record []string, name string) *int {
	raw := h.str(record, name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// ParseCountries reads countries.csv. Rows without a cca3 code are skipped;
// blank numeric cells become nil.
func ParseCountries(r io.Reader) ([]CountryRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read countries header: %w", err)
	}
	h := parseHeader(first)

	var rows []CountryRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read countries row: %w", err)
		}

		cca3 := strings.ToUpper(h.str(record, "cca3"))
		if cca3 == "" {
			continue
		}
		rows = append(rows, CountryRow{
			Country: models.Country{
				Country:         h.str(record, "country"),
				CCA2:            strings.ToUpper(h.str(record, "cca2")),
				CCA3:            cca3,
				Pop2025:         h.float(record, "pop2025"),
				Pop2050:         h.float(record, "pop2050"),
				Area:            h.float(record, "area"),
				LandAreaKm:      h.float(record, "landareakm"),
				Density:         h.float(record, "density"),
				GrowthRate:      h.float(record, "growthrate"),
				WorldPercentage: h.float(record, "worldpercentage"),
				Rank:            h.int(record, "rank"),
			},
			Continent: h.str(record, "continent"),
			Subregion: h.str(record, "subregion"),
		})
	}
	return rows, nil
}

// ParseIndicators reads economic_indicators.csv. Rows without a country
// code or a parseable year are skipped.
func ParseIndicators(r io.Reader) ([]models.EconomicIndicator, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read indicators header: %w", err)
	}
	h := parseHeader(first)

	var indicators []models.EconomicIndicator
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read indicators row: %w", err)
		}

		code := strings.ToUpper(h.str(record, "countrycode"))
		year := h.int(record, "year")
		if code == "" || year == nil {
			continue
		}
		indicators = append(indicators, models.EconomicIndicator{
			CountryCode:           code,
			Year:                  *year,
			GDPPerCapita:          h.float(record, "gdppercapita"),
			GDPTotal:              h.float(record, "gdptotal"),
			HumanDevelopmentIndex: h.float(record, "humandevelopmentindex"),
			GiniCoefficient:       h.float(record, "ginicoefficient"),
			UnemploymentRate:      h.float(record, "unemploymentrate"),
			UrbanizationRate:      h.float(record, "urbanizationrate"),
			LifeExpectancy:        h.float(record, "lifeexpectancy"),
			LiteracyRate:          h.float(record, "literacyrate"),
		})
	}
	return indicators, nil
}
