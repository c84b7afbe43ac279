package handler

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/rentals-go/internal/auth"
	"github.com/olegiv/rentals-go/internal/render"
	"github.com/olegiv/rentals-go/internal/store"
	"github.com/olegiv/rentals-go/web"
)

// testDB creates a migrated temp-file SQLite database for testing.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "rentals-handler-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return db
}

// testSessionManager creates a session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

// testRenderer creates a renderer over the real embedded templates.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()
	renderer, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: sm,
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return renderer
}

// createTestUser creates a manager account with the given password.
func createTestUser(t *testing.T, db *sql.DB, email, password string) store.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		FullName:     "Test Manager",
		Email:        email,
		Phone:        "0911223344",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// createTestApartment inserts an apartment row for testing.
func createTestApartment(t *testing.T, db *sql.DB, name string, rent float64) store.Apartment {
	t.Helper()

	now := time.Now()
	apt, err := store.New(db).CreateApartment(context.Background(), store.CreateApartmentParams{
		Name:      name,
		Bedrooms:  2,
		Bathrooms: 1,
		Location:  "Test Location",
		Rent:      rent,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateApartment: %v", err)
	}
	return apt
}

// createTestTenant inserts a tenant row for testing.
func createTestTenant(t *testing.T, db *sql.DB, name string, apartmentID sql.NullInt64) store.Tenant {
	t.Helper()

	now := time.Now()
	tenant, err := store.New(db).CreateTenant(context.Background(), store.CreateTenantParams{
		FullName:    name,
		Phone:       "0911000000",
		ApartmentID: apartmentID,
		LeaseStart:  "2024-06-01",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}
	return tenant
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// requestWithSession wraps a request with session context.
func requestWithSession(sm *scs.SessionManager, r *http.Request) *http.Request {
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		return r
	}
	return r.WithContext(ctx)
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// assertRedirect checks for a 303 redirect to the expected location.
func assertRedirect(t *testing.T, rec interface {
	Header() http.Header
}, code int, wantLocation string) {
	t.Helper()
	if code != http.StatusSeeOther {
		t.Errorf("status = %d; want %d", code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Errorf("Location = %q; want %q", got, wantLocation)
	}
}

// countRows returns the number of rows in a table.
func countRows(t *testing.T, db *sql.DB, table string) int64 {
	t.Helper()
	var n int64
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("counting %s rows: %v", table, err)
	}
	return n
}
