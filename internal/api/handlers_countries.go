// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/populytics/populytics/internal/database"
	"github.com/populytics/populytics/internal/models"
)

// countryRequest is the validated shape of country create and update bodies.
type countryRequest struct {
	Country         string   `json:"country" validate:"required,min=1,max=128"`
	CCA2            string   `json:"cca2" validate:"omitempty,len=2,alpha"`
	CCA3            string   `json:"cca3" validate:"required,cca3"`
	Pop2025         *float64 `json:"pop2025" validate:"omitempty,gte=0"`
	Pop2050         *float64 `json:"pop2050" validate:"omitempty,gte=0"`
	Area            *float64 `json:"area" validate:"omitempty,gte=0"`
	LandAreaKm      *float64 `json:"landAreaKm" validate:"omitempty,gte=0"`
	Density         *float64 `json:"density" validate:"omitempty,gte=0"`
	GrowthRate      *float64 `json:"growthRate"`
	WorldPercentage *float64 `json:"worldPercentage" validate:"omitempty,gte=0,lte=100"`
	Rank            *int     `json:"rank" validate:"omitempty,gte=1"`
}

func (req *countryRequest) toModel() models.Country {
	return models.Country{
		Country:         req.Country,
		CCA2:            strings.ToUpper(req.CCA2),
		CCA3:            strings.ToUpper(req.CCA3),
		Pop2025:         req.Pop2025,
		Pop2050:         req.Pop2050,
		Area:            req.Area,
		LandAreaKm:      req.LandAreaKm,
		Density:         req.Density,
		GrowthRate:      req.GrowthRate,
		WorldPercentage: req.WorldPercentage,
		Rank:            req.Rank,
	}
}

// Countries lists every country.
//
// Method: GET
// Path: /api/v1/countries
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	countries, err := h.db.ListCountries(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list countries", err)
		return
	}
	respondSuccess(w, countries, start, false)
}

// Country returns one country by its cca3 code.
//
// Method: GET
// Path: /api/v1/countries/{code}
func (h *Handler) Country(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	code := strings.ToUpper(chi.URLParam(r, "code"))

	country, err := h.db.GetCountry(r.Context(), code)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Country not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load country", err)
		return
	}
	respondSuccess(w, country, start, false)
}

// CreateCountry inserts a new country record.
//
// Method: POST
// Path: /api/v1/countries
func (h *Handler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req countryRequest
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

	country := req.toModel()
	if err := h.db.InsertCountry(r.Context(), country); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create country", err)
		return
	}
	h.ClearCache()
	respondSuccess(w, country, start, false)
}

// UpdateCountry replaces an existing country record.
//
// Method: PUT
// Path: /api/v1/countries/{code}
func (h *Handler) UpdateCountry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	code := strings.ToUpper(chi.URLParam(r, "code"))

	var req countryRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body is not valid JSON", err)
		return
	}
	req.CCA3 = code
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	country := req.toModel()
	err := h.db.UpdateCountry(r.Context(), country)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Country not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update country", err)
		return
	}
	h.ClearCache()
	respondSuccess(w, country, start, false)
}

// DeleteCountry removes a country record.
//
// Method: DELETE
// Path: /api/v1/countries/{code}
func (h *Handler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	code := strings.ToUpper(chi.URLParam(r, "code"))

	err := h.db.DeleteCountry(r.Context(), code)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Country not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete country", err)
		return
	}
	h.ClearCache()
	respondSuccess(w, map[string]string{"deleted": code}, start, false)
}

// CountryStats returns the global summary over all countries.
//
// Method: GET
// Path: /api/v1/countries/stats/summary
func (h *Handler) CountryStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	summary, err := h.db.GetCountrySummary(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute summary", err)
		return
	}
	respondSuccess(w, summary, start, false)
}
