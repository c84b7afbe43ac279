// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/rentals-go/internal/render"
	"github.com/olegiv/rentals-go/internal/store"
)

// TenantsHandler handles tenant management routes.
type TenantsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewTenantsHandler creates a new TenantsHandler.
func NewTenantsHandler(db *sql.DB, renderer *render.Renderer) *TenantsHandler {
	return &TenantsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// TenantFormData holds data for the tenant form template.
type TenantFormData struct {
	Tenant     *store.Tenant
	Apartments []store.AssignableApartment
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// tenantFormInput holds the parsed and validated tenant form fields.
type tenantFormInput struct {
	FullName    string
	Phone       string
	Email       sql.NullString
	ApartmentID sql.NullInt64
	LeaseStart  string
}

// parseTenantForm reads and validates the tenant form fields.
// The apartment selector uses ApartmentUnassigned as the "no apartment"
// sentinel; it is normalized to NULL here. Any other non-numeric value
// is a validation error, never a silent NULL.
func parseTenantForm(r *http.Request) (tenantFormInput, map[string]string, map[string]string) {
	fullName := strings.TrimSpace(r.FormValue("full_name"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	email := strings.TrimSpace(r.FormValue("email"))
	apartmentIDStr := strings.TrimSpace(r.FormValue("apartment_id"))
	leaseStart := strings.TrimSpace(r.FormValue("lease_start"))

	formValues := map[string]string{
		"full_name":    fullName,
		"phone":        phone,
		"email":        email,
		"apartment_id": apartmentIDStr,
		"lease_start":  leaseStart,
	}

	validationErrors := make(map[string]string)
	input := tenantFormInput{FullName: fullName, Phone: phone, LeaseStart: leaseStart}

	if fullName == "" {
		validationErrors["full_name"] = "Full name is required"
	}
	if phone == "" {
		validationErrors["phone"] = "Phone is required"
	}

	if email != "" {
		input.Email = sql.NullString{String: email, Valid: true}
	}

	if leaseStart == "" {
		validationErrors["lease_start"] = "Lease start date is required"
	} else if _, err := time.Parse("2006-01-02", leaseStart); err != nil {
		validationErrors["lease_start"] = "Lease start must be a valid date (YYYY-MM-DD)"
	}

	if apartmentIDStr != "" && apartmentIDStr != ApartmentUnassigned {
		id, err := strconv.ParseInt(apartmentIDStr, 10, 64)
		if err != nil || id <= 0 {
			validationErrors["apartment_id"] = "Invalid apartment selection"
		} else {
			input.ApartmentID = sql.NullInt64{Int64: id, Valid: true}
		}
	}

	return input, formValues, validationErrors
}

// NewForm handles GET /add_tenant - displays the new tenant form.
func (h *TenantsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.queries.ListAssignableApartments(r.Context(), sql.NullInt64{})
	if err != nil {
		logAndInternalError(w, "failed to list assignable apartments", "error", err)
		return
	}

	h.renderTenantForm(w, r, TenantFormData{
		Apartments: apartments,
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	})
}

// Create handles POST /add_tenant - creates a new tenant.
func (h *TenantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAddTenant) {
		return
	}

	input, formValues, validationErrors := parseTenantForm(r)
	if len(validationErrors) > 0 {
		apartments, err := h.queries.ListAssignableApartments(r.Context(), sql.NullInt64{})
		if err != nil {
			logAndInternalError(w, "failed to list assignable apartments", "error", err)
			return
		}
		h.renderTenantForm(w, r, TenantFormData{
			Apartments: apartments,
			Errors:     validationErrors,
			FormValues: formValues,
		})
		return
	}

	now := time.Now()
	tenant, err := h.queries.CreateTenant(r.Context(), store.CreateTenantParams{
		FullName:    input.FullName,
		Phone:       input.Phone,
		Email:       input.Email,
		ApartmentID: input.ApartmentID,
		LeaseStart:  input.LeaseStart,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("failed to create tenant", "error", err)
		flashError(w, r, h.renderer, redirectAddTenant, "Error adding tenant")
		return
	}

	slog.Info("tenant created", "tenant_id", tenant.ID, "full_name", tenant.FullName)
	flashSuccess(w, r, h.renderer, redirectManageTenants, "Tenant added successfully")
}

// TenantsListData holds data for the tenant list template.
type TenantsListData struct {
	Tenants []store.ListTenantsWithApartmentRow
}

// List handles GET /manage_tenants - displays all tenants with their apartment.
func (h *TenantsHandler) List(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.queries.ListTenantsWithApartment(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list tenants", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "tenants", render.TemplateData{
		Title: "Manage Tenants",
		Data:  TenantsListData{Tenants: tenants},
	}); err != nil {
		logAndInternalError(w, "failed to render tenant list", "error", err)
	}
}

// EditForm handles GET /edit_tenant/{id} - displays the edit form.
// The apartment selector offers every vacant apartment plus the tenant's
// current one, so an unchanged assignment round-trips.
func (h *TenantsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParamOrRedirect(w, r, h.renderer, redirectManageTenants)
	if !ok {
		return
	}

	tenant, ok := requireEntityWithRedirect(w, r, h.renderer, redirectManageTenants, "Tenant", id,
		func(id int64) (store.Tenant, error) { return h.queries.GetTenantByID(r.Context(), id) })
	if !ok {
		return
	}

	apartments, err := h.queries.ListAssignableApartments(r.Context(), tenant.ApartmentID)
	if err != nil {
		logAndInternalError(w, "failed to list assignable apartments", "error", err)
		return
	}

	apartmentIDStr := ApartmentUnassigned
	if tenant.ApartmentID.Valid {
		apartmentIDStr = strconv.FormatInt(tenant.ApartmentID.Int64, 10)
	}

	h.renderTenantForm(w, r, TenantFormData{
		Tenant:     &tenant,
		Apartments: apartments,
		Errors:     make(map[string]string),
		FormValues: map[string]string{
			"full_name":    tenant.FullName,
			"phone":        tenant.Phone,
			"email":        tenant.Email.String,
			"apartment_id": apartmentIDStr,
			"lease_start":  tenant.LeaseStart,
		},
		IsEdit: true,
	})
}

// Update handles POST /edit_tenant/{id} - updates a tenant in place.
func (h *TenantsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParamOrRedirect(w, r, h.renderer, redirectManageTenants)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectManageTenants) {
		return
	}

	tenant, ok := requireEntityWithRedirect(w, r, h.renderer, redirectManageTenants, "Tenant", id,
		func(id int64) (store.Tenant, error) { return h.queries.GetTenantByID(r.Context(), id) })
	if !ok {
		return
	}

	input, formValues, validationErrors := parseTenantForm(r)
	if len(validationErrors) > 0 {
		apartments, err := h.queries.ListAssignableApartments(r.Context(), tenant.ApartmentID)
		if err != nil {
			logAndInternalError(w, "failed to list assignable apartments", "error", err)
			return
		}
		h.renderTenantForm(w, r, TenantFormData{
			Tenant:     &tenant,
			Apartments: apartments,
			Errors:     validationErrors,
			FormValues: formValues,
			IsEdit:     true,
		})
		return
	}

	if err := h.queries.UpdateTenant(r.Context(), store.UpdateTenantParams{
		FullName:    input.FullName,
		Phone:       input.Phone,
		Email:       input.Email,
		ApartmentID: input.ApartmentID,
		LeaseStart:  input.LeaseStart,
		UpdatedAt:   time.Now(),
		ID:          id,
	}); err != nil {
		slog.Error("failed to update tenant", "error", err, "tenant_id", id)
		flashError(w, r, h.renderer, redirectManageTenants, "Error updating tenant")
		return
	}

	slog.Info("tenant updated", "tenant_id", id)
	flashSuccess(w, r, h.renderer, redirectManageTenants, "Tenant updated successfully")
}

// Delete handles POST /delete_tenant/{id} - deletes a tenant.
// Unlike apartment deletion, a missing tenant is reported as an error.
func (h *TenantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParamOrRedirect(w, r, h.renderer, redirectManageTenants)
	if !ok {
		return
	}

	affected, err := h.queries.DeleteTenant(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete tenant", "error", err, "tenant_id", id)
		flashError(w, r, h.renderer, redirectManageTenants, "Error deleting tenant")
		return
	}

	if affected == 0 {
		flashError(w, r, h.renderer, redirectManageTenants, "Tenant not found")
		return
	}

	slog.Info("tenant deleted", "tenant_id", id)
	flashSuccess(w, r, h.renderer, redirectManageTenants, "Tenant deleted successfully")
}

func (h *TenantsHandler) renderTenantForm(w http.ResponseWriter, r *http.Request, data TenantFormData) {
	title := "Add Tenant"
	if data.IsEdit {
		title = "Edit Tenant"
	}

	if err := h.renderer.Render(w, r, "tenant_form", render.TemplateData{
		Title: title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render tenant form", "error", err)
	}
}
