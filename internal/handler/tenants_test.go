// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/olegiv/rentals-go/internal/store"
)

func TestTenantsCreate_SentinelUnassigned(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	form := url.Values{
		"full_name":    {"Free Tenant"},
		"phone":        {"0911222333"},
		"apartment_id": {ApartmentUnassigned},
		"lease_start":  {"2025-02-01"},
	}
	req := requestWithSession(sm, postForm(t, RouteAddTenant, form))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertRedirect(t, rec, rec.Code, redirectManageTenants)

	var apartmentID sql.NullInt64
	err := db.QueryRow("SELECT apartment_id FROM tenants WHERE full_name = ?", "Free Tenant").Scan(&apartmentID)
	if err != nil {
		t.Fatalf("querying tenant: %v", err)
	}
	if apartmentID.Valid {
		t.Errorf("apartment_id = %v; want NULL for sentinel value", apartmentID)
	}
}

func TestTenantsCreate_WithApartment(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	apt := createTestApartment(t, db, "Assigned Unit", 10000)

	form := url.Values{
		"full_name":    {"Housed Tenant"},
		"phone":        {"0911222334"},
		"email":        {"housed@example.com"},
		"apartment_id": {strconv.FormatInt(apt.ID, 10)},
		"lease_start":  {"2025-03-01"},
	}
	req := requestWithSession(sm, postForm(t, RouteAddTenant, form))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertRedirect(t, rec, rec.Code, redirectManageTenants)

	var apartmentID sql.NullInt64
	err := db.QueryRow("SELECT apartment_id FROM tenants WHERE full_name = ?", "Housed Tenant").Scan(&apartmentID)
	if err != nil {
		t.Fatalf("querying tenant: %v", err)
	}
	if !apartmentID.Valid || apartmentID.Int64 != apt.ID {
		t.Errorf("apartment_id = %v; want %d", apartmentID, apt.ID)
	}
}

func TestTenantsCreate_UnparseableApartmentID(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	// A non-sentinel, non-numeric value is a validation error, never a silent NULL
	form := url.Values{
		"full_name":    {"Confused Tenant"},
		"phone":        {"0911222335"},
		"apartment_id": {"not-a-number"},
		"lease_start":  {"2025-02-01"},
	}
	req := requestWithSession(sm, postForm(t, RouteAddTenant, form))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Invalid apartment selection") {
		t.Error("expected apartment selection validation message")
	}
	if n := countRows(t, db, "tenants"); n != 0 {
		t.Errorf("tenants count = %d; want 0", n)
	}
}

func TestTenantsCreate_MissingFields(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	req := requestWithSession(sm, postForm(t, RouteAddTenant, url.Values{}))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)

	body := rec.Body.String()
	for _, msg := range []string{"Full name is required", "Phone is required", "Lease start date is required"} {
		if !strings.Contains(body, msg) {
			t.Errorf("expected %q in response", msg)
		}
	}
}

func TestTenantsCreate_BadLeaseDate(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	form := url.Values{
		"full_name":   {"Dated Tenant"},
		"phone":       {"0911222336"},
		"lease_start": {"02/01/2025"},
	}
	req := requestWithSession(sm, postForm(t, RouteAddTenant, form))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "valid date") {
		t.Error("expected lease date validation message")
	}
}

func TestTenantsList(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	apt := createTestApartment(t, db, "Listed Unit", 10000)
	createTestTenant(t, db, "Housed Person", sql.NullInt64{Int64: apt.ID, Valid: true})
	createTestTenant(t, db, "Homeless Person", sql.NullInt64{})

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, RouteManageTenants, nil))
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)

	body := rec.Body.String()
	if !strings.Contains(body, "Housed Person") || !strings.Contains(body, "Listed Unit") {
		t.Error("expected assigned tenant with apartment name")
	}
	if !strings.Contains(body, "Homeless Person") || !strings.Contains(body, "Unassigned") {
		t.Error("expected unassigned tenant with no apartment name")
	}
}

func TestTenantsEditForm_IncludesOwnApartment(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	mine := createTestApartment(t, db, "My Unit", 10000)
	other := createTestApartment(t, db, "Their Unit", 11000)
	tenant := createTestTenant(t, db, "Me", sql.NullInt64{Int64: mine.ID, Valid: true})
	createTestTenant(t, db, "Them", sql.NullInt64{Int64: other.ID, Valid: true})

	idStr := strconv.FormatInt(tenant.ID, 10)
	req := httptest.NewRequest(http.MethodGet, RouteEditTenant+"/"+idStr, nil)
	req = requestWithSession(sm, requestWithURLParams(req, map[string]string{"id": idStr}))
	rec := httptest.NewRecorder()
	h.EditForm(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)

	body := rec.Body.String()
	// The tenant's own occupied apartment stays selectable
	if !strings.Contains(body, "My Unit") {
		t.Error("edit form dropdown missing tenant's own apartment")
	}
	// Another tenant's apartment is not offered
	if strings.Contains(body, "Their Unit") {
		t.Error("edit form dropdown offers another tenant's apartment")
	}
}

func TestTenantsUpdate_Success(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	apt := createTestApartment(t, db, "New Home", 10000)
	tenant := createTestTenant(t, db, "Mover", sql.NullInt64{})

	form := url.Values{
		"full_name":    {"Mover"},
		"phone":        {"0911999888"},
		"apartment_id": {strconv.FormatInt(apt.ID, 10)},
		"lease_start":  {"2025-05-01"},
	}
	idStr := strconv.FormatInt(tenant.ID, 10)
	req := postForm(t, RouteEditTenant+"/"+idStr, form)
	req = requestWithSession(sm, requestWithURLParams(req, map[string]string{"id": idStr}))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assertRedirect(t, rec, rec.Code, redirectManageTenants)

	got, err := store.New(db).GetTenantByID(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("GetTenantByID: %v", err)
	}
	if !got.ApartmentID.Valid || got.ApartmentID.Int64 != apt.ID {
		t.Errorf("ApartmentID = %v; want %d", got.ApartmentID, apt.ID)
	}
	if got.LeaseStart != "2025-05-01" {
		t.Errorf("LeaseStart = %q; want 2025-05-01", got.LeaseStart)
	}
}

func TestTenantsUpdate_NotFound(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	form := url.Values{
		"full_name":   {"Ghost"},
		"phone":       {"0911000000"},
		"lease_start": {"2025-01-01"},
	}
	req := postForm(t, RouteEditTenant+"/9999", form)
	req = requestWithSession(sm, requestWithURLParams(req, map[string]string{"id": "9999"}))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assertRedirect(t, rec, rec.Code, redirectManageTenants)
}

func TestTenantsDelete_Success(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	tenant := createTestTenant(t, db, "Leaver", sql.NullInt64{})

	idStr := strconv.FormatInt(tenant.ID, 10)
	req := postForm(t, RouteDeleteTenant+"/"+idStr, url.Values{})
	req = requestWithSession(sm, requestWithURLParams(req, map[string]string{"id": idStr}))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assertRedirect(t, rec, rec.Code, redirectManageTenants)

	if n := countRows(t, db, "tenants"); n != 0 {
		t.Errorf("tenants count = %d; want 0", n)
	}
}

func TestTenantsDelete_NotFound(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewTenantsHandler(db, testRenderer(t, sm))

	// Unlike apartments, deleting a missing tenant is an error
	req := postForm(t, RouteDeleteTenant+"/4242", url.Values{})
	req = requestWithSession(sm, requestWithURLParams(req, map[string]string{"id": "4242"}))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assertRedirect(t, rec, rec.Code, redirectManageTenants)
	if got := sm.GetString(req.Context(), "flash_type"); got != "error" {
		t.Errorf("flash_type = %q; want error", got)
	}
}
