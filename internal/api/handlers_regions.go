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

// regionRequest is the validated shape of region create bodies. Member codes
// are uppercased; dangling codes are allowed and skipped at query time.
type regionRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=128"`
	Type      string   `json:"type" validate:"required,region_type"`
	Countries []string `json:"countries" validate:"required,min=1,dive,cca3"`
}

// Regions lists every region with its cached rollup figures.
//
// Method: GET
// Path: /api/v1/regions
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	regions, err := h.db.ListRegions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list regions", err)
		return
	}
	respondSuccess(w, regions, start, false)
}

// Region returns one region by name.
//
// Method: GET
// Path: /api/v1/regions/{name}
func (h *Handler) Region(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	region, err := h.db.GetRegion(r.Context(), name)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Region not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load region", err)
		return
	}
	respondSuccess(w, region, start, false)
}

// CreateRegion inserts a new region grouping.
//
// Method: POST
// Path: /api/v1/regions
func (h *Handler) CreateRegion(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req regionRequest
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

	members := make([]string, len(req.Countries))
	for i, code := range req.Countries {
		members[i] = strings.ToUpper(code)
	}
	region := models.Region{
		Name:      req.Name,
		Type:      models.RegionType(req.Type),
		Countries: members,
	}
	if err := h.db.InsertRegion(r.Context(), region); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create region", err)
		return
	}
	h.ClearCache()
	respondSuccess(w, region, start, false)
}

// RefreshRollups recomputes the cached rollup figures for every region.
//
// Method: POST
// Path: /api/v1/regions/refresh
func (h *Handler) RefreshRollups(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	updated, err := h.db.RefreshRegionRollups(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to refresh rollups", err)
		return
	}
	h.ClearCache()
	respondSuccess(w, map[string]int{"regionsUpdated": updated}, start, false)
}
