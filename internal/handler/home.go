// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the rentals application.
package handler

import (
	"database/sql"
	"net/http"

	"github.com/olegiv/rentals-go/internal/render"
	"github.com/olegiv/rentals-go/internal/store"
)

// HomeHandler handles the public listing and health check routes.
type HomeHandler struct {
	db       *sql.DB
	queries  *store.Queries
	renderer *render.Renderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(db *sql.DB, renderer *render.Renderer) *HomeHandler {
	return &HomeHandler{
		db:       db,
		queries:  store.New(db),
		renderer: renderer,
	}
}

// HomeData holds data for the public listing template.
type HomeData struct {
	Apartments []store.Apartment
}

// Index handles GET / - displays available apartments, highest rent first.
// This is the only page visible without a session.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.queries.ListAvailableApartments(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list available apartments", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "index", render.TemplateData{
		Title: "Available Apartments",
		Data:  HomeData{Apartments: apartments},
	}); err != nil {
		logAndInternalError(w, "failed to render index", "error", err)
	}
}

// Health handles GET /health - liveness check including database reachability.
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		http.Error(w, "unhealthy", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
