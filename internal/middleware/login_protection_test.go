// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginProtection_AccountLockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	email := "manager@example.com"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("account should not start locked")
	}

	// First two failures do not lock
	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("locked after %d attempts, want lock at 3", i+1)
		}
	}
	if remaining := lp.GetRemainingAttempts(email); remaining != 1 {
		t.Errorf("GetRemainingAttempts = %d, want 1", remaining)
	}

	// Third failure locks
	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("expected lock after 3 failed attempts")
	}
	if duration != time.Minute {
		t.Errorf("lock duration = %v, want 1m", duration)
	}

	if locked, _ := lp.IsAccountLocked(email); !locked {
		t.Error("IsAccountLocked = false after lockout")
	}
}

func TestLoginProtection_SuccessClearsAttempts(t *testing.T) {
	lp := NewLoginProtection(DefaultLoginProtectionConfig())

	email := "manager@example.com"
	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)

	lp.RecordSuccessfulLogin(email)

	if remaining := lp.GetRemainingAttempts(email); remaining != 5 {
		t.Errorf("GetRemainingAttempts = %d, want 5 after successful login", remaining)
	}
}

func TestLoginProtection_IPRateLimit(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit: 1,
		IPBurst:     2,
	})

	ip := "203.0.113.7"
	if !lp.CheckIPRateLimit(ip) {
		t.Fatal("first request should be allowed")
	}
	if !lp.CheckIPRateLimit(ip) {
		t.Fatal("second request within burst should be allowed")
	}
	if lp.CheckIPRateLimit(ip) {
		t.Error("third request should exceed burst")
	}
}

func TestLoginProtection_Middleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit: 0.001,
		IPBurst:     1,
	})

	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// GET requests are never rate limited
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET request %d blocked: %d", i+1, rec.Code)
		}
	}

	// First POST within burst passes
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first POST blocked: %d", rec.Code)
	}

	// Second POST exceeds burst
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second POST status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"x-real-ip", map[string]string{"X-Real-IP": "1.2.3.4"}, "5.6.7.8:1234", "1.2.3.4"},
		{"x-forwarded-for", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "5.6.7.8:1234", "1.2.3.4"},
		{"remote addr", nil, "5.6.7.8:1234", "5.6.7.8:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
