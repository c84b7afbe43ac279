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

// ApartmentsHandler handles apartment management routes.
type ApartmentsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewApartmentsHandler creates a new ApartmentsHandler.
func NewApartmentsHandler(db *sql.DB, renderer *render.Renderer) *ApartmentsHandler {
	return &ApartmentsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// ApartmentFormData holds data for the apartment form template.
type ApartmentFormData struct {
	Apartment  *store.Apartment
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
	// CurrentTenant is the occupying tenant's name, empty when vacant.
	CurrentTenant string
}

// apartmentFormInput holds the parsed and validated apartment form fields.
type apartmentFormInput struct {
	Name      string
	Location  string
	Bedrooms  int64
	Bathrooms int64
	Rent      float64
}

// parseApartmentForm reads and validates the apartment form fields.
// Returns the parsed input, the raw values for re-rendering, and a map of
// validation errors (empty when the input is valid).
func parseApartmentForm(r *http.Request) (apartmentFormInput, map[string]string, map[string]string) {
	name := strings.TrimSpace(r.FormValue("name"))
	location := strings.TrimSpace(r.FormValue("location"))
	bedroomsStr := strings.TrimSpace(r.FormValue("bedrooms"))
	bathroomsStr := strings.TrimSpace(r.FormValue("bathrooms"))
	rentStr := strings.TrimSpace(r.FormValue("rent"))

	formValues := map[string]string{
		"name":      name,
		"location":  location,
		"bedrooms":  bedroomsStr,
		"bathrooms": bathroomsStr,
		"rent":      rentStr,
	}

	validationErrors := make(map[string]string)
	input := apartmentFormInput{Name: name, Location: location}

	if name == "" {
		validationErrors["name"] = "Name is required"
	}
	if location == "" {
		validationErrors["location"] = "Location is required"
	}

	if bedroomsStr == "" {
		validationErrors["bedrooms"] = "Bedrooms is required"
	} else if n, err := strconv.ParseInt(bedroomsStr, 10, 64); err != nil || n <= 0 {
		validationErrors["bedrooms"] = "Bedrooms must be a positive number"
	} else {
		input.Bedrooms = n
	}

	if bathroomsStr == "" {
		validationErrors["bathrooms"] = "Bathrooms is required"
	} else if n, err := strconv.ParseInt(bathroomsStr, 10, 64); err != nil || n <= 0 {
		validationErrors["bathrooms"] = "Bathrooms must be a positive number"
	} else {
		input.Bathrooms = n
	}

	if rentStr == "" {
		validationErrors["rent"] = "Rent is required"
	} else if f, err := strconv.ParseFloat(rentStr, 64); err != nil || f <= 0 {
		validationErrors["rent"] = "Rent must be a positive number"
	} else {
		input.Rent = f
	}

	return input, formValues, validationErrors
}

// NewForm handles GET /add_apartment - displays the new apartment form.
func (h *ApartmentsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderApartmentForm(w, r, ApartmentFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	})
}

// Create handles POST /add_apartment - creates a new apartment.
func (h *ApartmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAddApartment) {
		return
	}

	input, formValues, validationErrors := parseApartmentForm(r)
	if len(validationErrors) > 0 {
		h.renderApartmentForm(w, r, ApartmentFormData{
			Errors:     validationErrors,
			FormValues: formValues,
		})
		return
	}

	now := time.Now()
	apt, err := h.queries.CreateApartment(r.Context(), store.CreateApartmentParams{
		Name:      input.Name,
		Bedrooms:  input.Bedrooms,
		Bathrooms: input.Bathrooms,
		Location:  input.Location,
		Rent:      input.Rent,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("failed to create apartment", "error", err)
		flashError(w, r, h.renderer, redirectAddApartment, "Error adding apartment")
		return
	}

	slog.Info("apartment created", "apartment_id", apt.ID, "name", apt.Name)
	flashSuccess(w, r, h.renderer, redirectManageApartments, "Apartment added successfully")
}

// ApartmentsListData holds data for the apartment list template.
type ApartmentsListData struct {
	Apartments []store.ListApartmentsWithOccupancyRow
}

// List handles GET /manage_apartments - displays all apartments with occupancy.
func (h *ApartmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.queries.ListApartmentsWithOccupancy(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list apartments", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "apartments", render.TemplateData{
		Title: "Manage Apartments",
		Data:  ApartmentsListData{Apartments: apartments},
	}); err != nil {
		logAndInternalError(w, "failed to render apartment list", "error", err)
	}
}

// EditForm handles GET /edit_apartment/{id} - displays the edit form.
func (h *ApartmentsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParamOrRedirect(w, r, h.renderer, redirectManageApartments)
	if !ok {
		return
	}

	row, ok := requireEntityWithRedirect(w, r, h.renderer, redirectManageApartments, "Apartment", id,
		func(id int64) (store.GetApartmentWithTenantRow, error) {
			return h.queries.GetApartmentWithTenant(r.Context(), id)
		})
	if !ok {
		return
	}

	h.renderApartmentForm(w, r, ApartmentFormData{
		Apartment: &row.Apartment,
		Errors:    make(map[string]string),
		FormValues: map[string]string{
			"name":      row.Name,
			"location":  row.Location,
			"bedrooms":  strconv.FormatInt(row.Bedrooms, 10),
			"bathrooms": strconv.FormatInt(row.Bathrooms, 10),
			"rent":      strconv.FormatFloat(row.Rent, 'f', -1, 64),
		},
		IsEdit:        true,
		CurrentTenant: row.TenantName.String,
	})
}

// Update handles POST /edit_apartment/{id} - updates an apartment in place.
func (h *ApartmentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParamOrRedirect(w, r, h.renderer, redirectManageApartments)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectManageApartments) {
		return
	}

	apt, ok := requireEntityWithRedirect(w, r, h.renderer, redirectManageApartments, "Apartment", id,
		func(id int64) (store.Apartment, error) { return h.queries.GetApartmentByID(r.Context(), id) })
	if !ok {
		return
	}

	input, formValues, validationErrors := parseApartmentForm(r)
	if len(validationErrors) > 0 {
		h.renderApartmentForm(w, r, ApartmentFormData{
			Apartment:  &apt,
			Errors:     validationErrors,
			FormValues: formValues,
			IsEdit:     true,
		})
		return
	}

	if err := h.queries.UpdateApartment(r.Context(), store.UpdateApartmentParams{
		Name:      input.Name,
		Bedrooms:  input.Bedrooms,
		Bathrooms: input.Bathrooms,
		Location:  input.Location,
		Rent:      input.Rent,
		UpdatedAt: time.Now(),
		ID:        id,
	}); err != nil {
		slog.Error("failed to update apartment", "error", err, "apartment_id", id)
		flashError(w, r, h.renderer, redirectManageApartments, "Error updating apartment")
		return
	}

	slog.Info("apartment updated", "apartment_id", id)
	flashSuccess(w, r, h.renderer, redirectManageApartments, "Apartment updated successfully")
}

// Delete handles POST /delete_apartment/{id} - deletes an apartment.
// Tenants referencing the apartment keep their rows; the foreign key
// resets their apartment_id to NULL. Deleting an apartment that no
// longer exists is treated as success.
func (h *ApartmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParamOrRedirect(w, r, h.renderer, redirectManageApartments)
	if !ok {
		return
	}

	affected, err := h.queries.DeleteApartment(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete apartment", "error", err, "apartment_id", id)
		flashError(w, r, h.renderer, redirectManageApartments, "Error deleting apartment")
		return
	}

	if affected == 0 {
		slog.Debug("delete requested for missing apartment", "apartment_id", id)
	} else {
		slog.Info("apartment deleted", "apartment_id", id)
	}

	flashSuccess(w, r, h.renderer, redirectManageApartments, "Apartment deleted successfully")
}

func (h *ApartmentsHandler) renderApartmentForm(w http.ResponseWriter, r *http.Request, data ApartmentFormData) {
	title := "Add Apartment"
	if data.IsEdit {
		title = "Edit Apartment"
	}

	if err := h.renderer.Render(w, r, "apartment_form", render.TemplateData{
		Title: title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render apartment form", "error", err)
	}
}
