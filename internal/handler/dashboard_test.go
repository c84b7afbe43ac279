// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/rentals-go/internal/middleware"
)

func TestDashboard_Counts(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewDashboardHandler(db, testRenderer(t, sm))

	// Seed-shaped state: 3 apartments, 1 tenant on the first
	a1 := createTestApartment(t, db, "First", 10000)
	createTestApartment(t, db, "Second", 11000)
	createTestApartment(t, db, "Third", 12000)
	createTestTenant(t, db, "Only Tenant", sql.NullInt64{Int64: a1.ID, Valid: true})

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, RouteDashboard, nil))
	rec := httptest.NewRecorder()
	h.Show(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)

	body := rec.Body.String()
	for _, want := range []string{
		`<span class="stat-value">3</span>`, // total apartments
		`<span class="stat-value">2</span>`, // available
		`<span class="stat-value">1</span>`, // occupied and tenants
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %s", want)
		}
	}
}

func TestDashboard_GreetsManager(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewDashboardHandler(db, testRenderer(t, sm))

	user := createTestUser(t, db, "manager@example.com", "password123")

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, RouteDashboard, nil))
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, user))
	rec := httptest.NewRecorder()
	h.Show(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Welcome, "+user.FullName) {
		t.Error("expected manager greeting on dashboard")
	}
}

func TestDashboard_Empty(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewDashboardHandler(db, testRenderer(t, sm))

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, RouteDashboard, nil))
	rec := httptest.NewRecorder()
	h.Show(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `<span class="stat-value">0</span>`) {
		t.Error("expected zero counts on empty database")
	}
}
