// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the minimal database interface used by Queries, satisfied by
// both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries wraps a database handle and exposes all application queries.
// Every statement is parameterized; caller-supplied values are never
// interpolated into query text.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// ----------------------------------------------------------------------------
// Users

const createUser = `
INSERT INTO users (full_name, email, phone, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, full_name, email, phone, password_hash, created_at, updated_at, last_login_at
`

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a new manager account. A UNIQUE violation on email
// surfaces as a driver constraint error.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.FullName, arg.Email, arg.Phone, arg.PasswordHash, arg.CreatedAt, arg.UpdatedAt)
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const getUserByEmail = `
SELECT id, full_name, email, phone, password_hash, created_at, updated_at, last_login_at
FROM users WHERE email = ?
`

// GetUserByEmail returns the user with the given email, or sql.ErrNoRows.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const getUserByID = `
SELECT id, full_name, email, phone, password_hash, created_at, updated_at, last_login_at
FROM users WHERE id = ?
`

// GetUserByID returns the user with the given id, or sql.ErrNoRows.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const updateUserLastLogin = `
UPDATE users SET last_login_at = ? WHERE id = ?
`

// UpdateUserLastLoginParams holds the fields for UpdateUserLastLogin.
type UpdateUserLastLoginParams struct {
	LastLoginAt sql.NullTime
	ID          int64
}

// UpdateUserLastLogin records the most recent successful login.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, arg UpdateUserLastLoginParams) error {
	_, err := q.db.ExecContext(ctx, updateUserLastLogin, arg.LastLoginAt, arg.ID)
	return err
}

const countUsers = `SELECT COUNT(*) FROM users`

// CountUsers returns the total number of manager accounts.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&count)
	return count, err
}

// ----------------------------------------------------------------------------
// Apartments

const createApartment = `
INSERT INTO apartments (name, bedrooms, bathrooms, location, rent, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, name, bedrooms, bathrooms, location, rent, created_at, updated_at
`

// CreateApartmentParams holds the fields for CreateApartment.
type CreateApartmentParams struct {
	Name      string
	Bedrooms  int64
	Bathrooms int64
	Location  string
	Rent      float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateApartment inserts a new apartment listing.
func (q *Queries) CreateApartment(ctx context.Context, arg CreateApartmentParams) (Apartment, error) {
	row := q.db.QueryRowContext(ctx, createApartment,
		arg.Name, arg.Bedrooms, arg.Bathrooms, arg.Location, arg.Rent, arg.CreatedAt, arg.UpdatedAt)
	var a Apartment
	err := row.Scan(&a.ID, &a.Name, &a.Bedrooms, &a.Bathrooms, &a.Location, &a.Rent,
		&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const getApartmentByID = `
SELECT id, name, bedrooms, bathrooms, location, rent, created_at, updated_at
FROM apartments WHERE id = ?
`

// GetApartmentByID returns the apartment with the given id, or sql.ErrNoRows.
func (q *Queries) GetApartmentByID(ctx context.Context, id int64) (Apartment, error) {
	row := q.db.QueryRowContext(ctx, getApartmentByID, id)
	var a Apartment
	err := row.Scan(&a.ID, &a.Name, &a.Bedrooms, &a.Bathrooms, &a.Location, &a.Rent,
		&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const listAvailableApartments = `
SELECT a.id, a.name, a.bedrooms, a.bathrooms, a.location, a.rent, a.created_at, a.updated_at
FROM apartments a
LEFT JOIN tenants t ON a.id = t.apartment_id
WHERE t.apartment_id IS NULL
ORDER BY a.rent DESC
`

// ListAvailableApartments returns apartments with no current tenant
// reference, most expensive first. Availability is always recomputed
// from current state, never cached.
func (q *Queries) ListAvailableApartments(ctx context.Context) ([]Apartment, error) {
	rows, err := q.db.QueryContext(ctx, listAvailableApartments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Apartment
	for rows.Next() {
		var a Apartment
		if err := rows.Scan(&a.ID, &a.Name, &a.Bedrooms, &a.Bathrooms, &a.Location, &a.Rent,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const listApartmentsWithOccupancy = `
SELECT a.id, a.name, a.bedrooms, a.bathrooms, a.location, a.rent, a.created_at, a.updated_at,
       COUNT(t.id) AS tenant_count
FROM apartments a
LEFT JOIN tenants t ON a.id = t.apartment_id
GROUP BY a.id
ORDER BY a.name
`

// ListApartmentsWithOccupancyRow is an apartment plus the count of tenants
// currently referencing it. The count is not assumed to be at most one.
type ListApartmentsWithOccupancyRow struct {
	Apartment
	TenantCount int64
}

// ListApartmentsWithOccupancy returns every apartment with its current
// tenant count, ordered by name.
func (q *Queries) ListApartmentsWithOccupancy(ctx context.Context) ([]ListApartmentsWithOccupancyRow, error) {
	rows, err := q.db.QueryContext(ctx, listApartmentsWithOccupancy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListApartmentsWithOccupancyRow
	for rows.Next() {
		var r ListApartmentsWithOccupancyRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Bedrooms, &r.Bathrooms, &r.Location, &r.Rent,
			&r.CreatedAt, &r.UpdatedAt, &r.TenantCount); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const getApartmentWithTenant = `
SELECT a.id, a.name, a.bedrooms, a.bathrooms, a.location, a.rent, a.created_at, a.updated_at,
       t.full_name AS tenant_name, t.id AS tenant_id
FROM apartments a
LEFT JOIN tenants t ON a.id = t.apartment_id
WHERE a.id = ?
`

// GetApartmentWithTenantRow is an apartment plus its current tenant, if any.
type GetApartmentWithTenantRow struct {
	Apartment
	TenantName sql.NullString
	TenantID   sql.NullInt64
}

// GetApartmentWithTenant returns the apartment with current tenant info for
// display on the edit form, or sql.ErrNoRows.
func (q *Queries) GetApartmentWithTenant(ctx context.Context, id int64) (GetApartmentWithTenantRow, error) {
	row := q.db.QueryRowContext(ctx, getApartmentWithTenant, id)
	var r GetApartmentWithTenantRow
	err := row.Scan(&r.ID, &r.Name, &r.Bedrooms, &r.Bathrooms, &r.Location, &r.Rent,
		&r.CreatedAt, &r.UpdatedAt, &r.TenantName, &r.TenantID)
	return r, err
}

const listAssignableApartments = `
SELECT a.id, a.name
FROM apartments a
LEFT JOIN tenants t ON a.id = t.apartment_id
WHERE t.apartment_id IS NULL OR a.id = ?
ORDER BY a.name
`

// AssignableApartment is a dropdown candidate for tenant assignment.
type AssignableApartment struct {
	ID   int64
	Name string
}

// ListAssignableApartments returns apartments with no current tenant, plus
// the apartment identified by currentID. Pass an invalid NullInt64 when
// creating a tenant; pass the tenant's current apartment when editing so
// their own unit remains selectable.
func (q *Queries) ListAssignableApartments(ctx context.Context, currentID sql.NullInt64) ([]AssignableApartment, error) {
	rows, err := q.db.QueryContext(ctx, listAssignableApartments, currentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AssignableApartment
	for rows.Next() {
		var a AssignableApartment
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const updateApartment = `
UPDATE apartments
SET name = ?, bedrooms = ?, bathrooms = ?, location = ?, rent = ?, updated_at = ?
WHERE id = ?
`

// UpdateApartmentParams holds the fields for UpdateApartment.
type UpdateApartmentParams struct {
	Name      string
	Bedrooms  int64
	Bathrooms int64
	Location  string
	Rent      float64
	UpdatedAt time.Time
	ID        int64
}

// UpdateApartment updates an apartment in place.
func (q *Queries) UpdateApartment(ctx context.Context, arg UpdateApartmentParams) error {
	_, err := q.db.ExecContext(ctx, updateApartment,
		arg.Name, arg.Bedrooms, arg.Bathrooms, arg.Location, arg.Rent, arg.UpdatedAt, arg.ID)
	return err
}

const deleteApartment = `DELETE FROM apartments WHERE id = ?`

// DeleteApartment deletes an apartment by id. The ON DELETE SET NULL rule
// resets apartment_id on any referencing tenants; the tenants themselves
// are never deleted. Returns the number of rows removed.
func (q *Queries) DeleteApartment(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteApartment, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countApartments = `SELECT COUNT(id) FROM apartments`

// CountApartments returns the total apartment count.
func (q *Queries) CountApartments(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countApartments).Scan(&count)
	return count, err
}

const countOccupiedApartments = `
SELECT COUNT(DISTINCT apartment_id) FROM tenants WHERE apartment_id IS NOT NULL
`

// CountOccupiedApartments returns the number of distinct apartments
// referenced by at least one tenant.
func (q *Queries) CountOccupiedApartments(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countOccupiedApartments).Scan(&count)
	return count, err
}

// ----------------------------------------------------------------------------
// Tenants

const createTenant = `
INSERT INTO tenants (full_name, phone, email, apartment_id, lease_start, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, full_name, phone, email, apartment_id, lease_start, created_at, updated_at
`

// CreateTenantParams holds the fields for CreateTenant.
type CreateTenantParams struct {
	FullName    string
	Phone       string
	Email       sql.NullString
	ApartmentID sql.NullInt64
	LeaseStart  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTenant inserts a new tenant record.
func (q *Queries) CreateTenant(ctx context.Context, arg CreateTenantParams) (Tenant, error) {
	row := q.db.QueryRowContext(ctx, createTenant,
		arg.FullName, arg.Phone, arg.Email, arg.ApartmentID, arg.LeaseStart, arg.CreatedAt, arg.UpdatedAt)
	var t Tenant
	err := row.Scan(&t.ID, &t.FullName, &t.Phone, &t.Email, &t.ApartmentID, &t.LeaseStart,
		&t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const getTenantByID = `
SELECT id, full_name, phone, email, apartment_id, lease_start, created_at, updated_at
FROM tenants WHERE id = ?
`

// GetTenantByID returns the tenant with the given id, or sql.ErrNoRows.
func (q *Queries) GetTenantByID(ctx context.Context, id int64) (Tenant, error) {
	row := q.db.QueryRowContext(ctx, getTenantByID, id)
	var t Tenant
	err := row.Scan(&t.ID, &t.FullName, &t.Phone, &t.Email, &t.ApartmentID, &t.LeaseStart,
		&t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const listTenantsWithApartment = `
SELECT t.id, t.full_name, t.phone, t.email, t.apartment_id, t.lease_start, t.created_at, t.updated_at,
       a.name AS apartment_name
FROM tenants t
LEFT JOIN apartments a ON t.apartment_id = a.id
ORDER BY t.full_name
`

// ListTenantsWithApartmentRow is a tenant plus its apartment's name, which
// is NULL while the tenant is unassigned.
type ListTenantsWithApartmentRow struct {
	Tenant
	ApartmentName sql.NullString
}

// ListTenantsWithApartment returns every tenant joined with its apartment
// name, ordered by full name.
func (q *Queries) ListTenantsWithApartment(ctx context.Context) ([]ListTenantsWithApartmentRow, error) {
	rows, err := q.db.QueryContext(ctx, listTenantsWithApartment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListTenantsWithApartmentRow
	for rows.Next() {
		var r ListTenantsWithApartmentRow
		if err := rows.Scan(&r.ID, &r.FullName, &r.Phone, &r.Email, &r.ApartmentID, &r.LeaseStart,
			&r.CreatedAt, &r.UpdatedAt, &r.ApartmentName); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const updateTenant = `
UPDATE tenants
SET full_name = ?, phone = ?, email = ?, apartment_id = ?, lease_start = ?, updated_at = ?
WHERE id = ?
`

// UpdateTenantParams holds the fields for UpdateTenant.
type UpdateTenantParams struct {
	FullName    string
	Phone       string
	Email       sql.NullString
	ApartmentID sql.NullInt64
	LeaseStart  string
	UpdatedAt   time.Time
	ID          int64
}

// UpdateTenant updates a tenant in place.
func (q *Queries) UpdateTenant(ctx context.Context, arg UpdateTenantParams) error {
	_, err := q.db.ExecContext(ctx, updateTenant,
		arg.FullName, arg.Phone, arg.Email, arg.ApartmentID, arg.LeaseStart, arg.UpdatedAt, arg.ID)
	return err
}

const deleteTenant = `DELETE FROM tenants WHERE id = ?`

// DeleteTenant deletes a tenant by id. Returns the number of rows removed
// so callers can distinguish a missing record.
func (q *Queries) DeleteTenant(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTenant, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countTenants = `SELECT COUNT(id) FROM tenants`

// CountTenants returns the total tenant count, including unassigned tenants.
func (q *Queries) CountTenants(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countTenants).Scan(&count)
	return count, err
}
