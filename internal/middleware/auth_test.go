// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/rentals-go/internal/store"
)

func TestGetUser(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		user := GetUser(req)
		if user != nil {
			t.Errorf("GetUser() = %v, want nil", user)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		testUser := store.User{
			ID:       123,
			Email:    "test@example.com",
			FullName: "Test Manager",
		}
		ctx := context.WithValue(req.Context(), ContextKeyUser, testUser)
		req = req.WithContext(ctx)

		user := GetUser(req)
		if user == nil {
			t.Fatal("GetUser() = nil, want user")
		}
		if user.ID != 123 {
			t.Errorf("GetUser().ID = %d, want 123", user.ID)
		}
		if user.Email != "test@example.com" {
			t.Errorf("GetUser().Email = %q, want %q", user.Email, "test@example.com")
		}
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		id := GetUserID(req)
		if id != 0 {
			t.Errorf("GetUserID() = %d, want 0", id)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		testUser := store.User{ID: 456}
		ctx := context.WithValue(req.Context(), ContextKeyUser, testUser)
		req = req.WithContext(ctx)

		id := GetUserID(req)
		if id != 456 {
			t.Errorf("GetUserID() = %d, want 456", id)
		}
	})
}

func TestAuth_Unauthenticated(t *testing.T) {
	sm := scs.New()

	handler := sm.LoadAndSave(Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler should not be reached without a session")
	})))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}
}

func TestAuth_Authenticated(t *testing.T) {
	sm := scs.New()

	reached := false
	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyUserID, int64(42))
		Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		})).ServeHTTP(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !reached {
		t.Error("protected handler was not reached with a valid session")
	}
}

func TestRequestPath(t *testing.T) {
	var got string
	handler := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/manage_apartments", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "/manage_apartments" {
		t.Errorf("GetRequestPath() = %q, want %q", got, "/manage_apartments")
	}
}

func TestGetRequestPath_Empty(t *testing.T) {
	if got := GetRequestPath(context.Background()); got != "" {
		t.Errorf("GetRequestPath() = %q, want empty", got)
	}
}
