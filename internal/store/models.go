// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// User is a manager account.
type User struct {
	ID           int64        `json:"id"`
	FullName     string       `json:"full_name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
}

// Apartment is a rentable unit.
type Apartment struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bedrooms  int64     `json:"bedrooms"`
	Bathrooms int64     `json:"bathrooms"`
	Location  string    `json:"location"`
	Rent      float64   `json:"rent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tenant is a renter, optionally linked to one apartment.
// ApartmentID is NULL while the tenant is unassigned; the storage engine
// resets it to NULL when the referenced apartment is deleted.
type Tenant struct {
	ID          int64          `json:"id"`
	FullName    string         `json:"full_name"`
	Phone       string         `json:"phone"`
	Email       sql.NullString `json:"email,omitempty"`
	ApartmentID sql.NullInt64  `json:"apartment_id,omitempty"`
	LeaseStart  string         `json:"lease_start"` // ISO date, e.g. 2024-01-01
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Occupied reports whether the apartment with this tenant count has at
// least one current tenant reference.
func (r ListApartmentsWithOccupancyRow) Occupied() bool {
	return r.TenantCount > 0
}
