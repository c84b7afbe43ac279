// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/olegiv/rentals-go/internal/middleware"
	"github.com/olegiv/rentals-go/internal/render"
	"github.com/olegiv/rentals-go/internal/store"
)

// DashboardHandler handles the dashboard route.
type DashboardHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *sql.DB, renderer *render.Renderer) *DashboardHandler {
	return &DashboardHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// DashboardData holds the aggregate counts for the dashboard template.
// Counts are recomputed from current storage state on every request.
type DashboardData struct {
	ManagerName         string
	TotalApartments     int64
	OccupiedApartments  int64
	AvailableApartments int64
	TotalTenants        int64
}

// Show handles GET /dashboard - displays aggregate occupancy counts.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	total, err := h.queries.CountApartments(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count apartments", "error", err)
		return
	}

	occupied, err := h.queries.CountOccupiedApartments(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count occupied apartments", "error", err)
		return
	}

	tenants, err := h.queries.CountTenants(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count tenants", "error", err)
		return
	}

	data := DashboardData{
		TotalApartments:     total,
		OccupiedApartments:  occupied,
		AvailableApartments: total - occupied,
		TotalTenants:        tenants,
	}
	if user := middleware.GetUser(r); user != nil {
		data.ManagerName = user.FullName
	}

	if err := h.renderer.Render(w, r, "dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}
