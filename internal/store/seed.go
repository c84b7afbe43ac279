// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Seed inserts sample listings on first run so that the public listing and
// dashboard have something to show. Detected via a row-count check on the
// apartments table, so re-running is a no-op.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountApartments(ctx)
	if err != nil {
		return fmt.Errorf("counting apartments: %w", err)
	}
	if count > 0 {
		slog.Info("apartments already present, skipping seed")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := queries.WithTx(tx)

	now := time.Now()

	samples := []CreateApartmentParams{
		{Name: "Goro Deluxe Apt", Bedrooms: 3, Bathrooms: 2, Location: "Goro", Rent: 15000.00, CreatedAt: now, UpdatedAt: now},
		{Name: "Kazanchis Studio", Bedrooms: 1, Bathrooms: 1, Location: "Kazanchis", Rent: 8000.00, CreatedAt: now, UpdatedAt: now},
		{Name: "Bole Road Family Home", Bedrooms: 4, Bathrooms: 3, Location: "Bole", Rent: 25000.00, CreatedAt: now, UpdatedAt: now},
	}

	var first Apartment
	for i, sample := range samples {
		apt, err := qtx.CreateApartment(ctx, sample)
		if err != nil {
			return fmt.Errorf("seeding apartment %q: %w", sample.Name, err)
		}
		if i == 0 {
			first = apt
		}
	}

	// One assigned tenant so the occupied/available split is visible out of
	// the box.
	tenant, err := qtx.CreateTenant(ctx, CreateTenantParams{
		FullName:    "Abebe Kebede",
		Phone:       "0911223344",
		Email:       sql.NullString{String: "abebek@example.com", Valid: true},
		ApartmentID: sql.NullInt64{Int64: first.ID, Valid: true},
		LeaseStart:  "2024-01-01",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("seeding tenant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	slog.Info("seeded sample data",
		"apartments", len(samples),
		"tenants", 1,
		"occupied_apartment_id", tenant.ApartmentID.Int64,
	)

	return nil
}
