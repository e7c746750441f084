// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/populytics/populytics/internal/database"
	"github.com/populytics/populytics/internal/models"
)

// indicatorRequest is the validated shape of indicator create bodies.
// Rate and index fields are bounded where the unit defines a range.
type indicatorRequest struct {
	CountryCode           string   `json:"countryCode" validate:"required,cca3"`
	Year                  int      `json:"year" validate:"required,gte=1900,lte=2100"`
	GDPPerCapita          *float64 `json:"gdpPerCapita" validate:"omitempty,gte=0"`
	GDPTotal              *float64 `json:"gdpTotal" validate:"omitempty,gte=0"`
	HumanDevelopmentIndex *float64 `json:"humanDevelopmentIndex" validate:"omitempty,gte=0,lte=1"`
	GiniCoefficient       *float64 `json:"giniCoefficient" validate:"omitempty,gte=0,lte=1"`
	UnemploymentRate      *float64 `json:"unemploymentRate" validate:"omitempty,gte=0,lte=100"`
	UrbanizationRate      *float64 `json:"urbanizationRate" validate:"omitempty,gte=0,lte=100"`
	LifeExpectancy        *float64 `json:"lifeExpectancy" validate:"omitempty,gt=0,lte=120"`
	LiteracyRate          *float64 `json:"literacyRate" validate:"omitempty,gte=0,lte=100"`
}

// Indicators lists economic indicators, optionally filtered.
//
// Method: GET
// Path: /api/v1/indicators
//
// Query Parameters:
//   - country_code: cca3 code filter
//   - year: exact observation year filter
func (h *Handler) Indicators(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	filter := database.IndicatorFilter{
		CountryCode: strings.ToUpper(r.URL.Query().Get("country_code")),
		Year:        getIntParam(r, "year", 0),
	}

	indicators, err := h.db.ListIndicators(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list indicators", err)
		return
	}
	respondSuccess(w, indicators, start, false)
}

// CountryIndicators lists all observation years for one country, most
// recent first.
//
// Method: GET
// Path: /api/v1/indicators/country/{code}
func (h *Handler) CountryIndicators(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	code := strings.ToUpper(chi.URLParam(r, "code"))

	indicators, err := h.db.ListIndicatorsByCountry(r.Context(), code)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list indicators", err)
		return
	}
	respondSuccess(w, indicators, start, false)
}

// CreateIndicator inserts one economic observation.
//
// Method: POST
// Path: /api/v1/indicators
func (h *Handler) CreateIndicator(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req indicatorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body is not valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	indicator := models.EconomicIndicator{
		CountryCode:           strings.ToUpper(req.CountryCode),
		Year:                  req.Year,
		GDPPerCapita:          req.GDPPerCapita,
		GDPTotal:              req.GDPTotal,
		HumanDevelopmentIndex: req.HumanDevelopmentIndex,
		GiniCoefficient:       req.GiniCoefficient,
		UnemploymentRate:      req.UnemploymentRate,
		UrbanizationRate:      req.UrbanizationRate,
		LifeExpectancy:        req.LifeExpectancy,
		LiteracyRate:          req.LiteracyRate,
	}
	if err := h.db.InsertIndicator(r.Context(), indicator); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create indicator", err)
		return
	}
	h.ClearCache()
	respondSuccess(w, indicator, start, false)
}
