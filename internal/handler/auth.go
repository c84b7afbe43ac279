// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/rentals-go/internal/auth"
	"github.com/olegiv/rentals-go/internal/middleware"
	"github.com/olegiv/rentals-go/internal/render"
	"github.com/olegiv/rentals-go/internal/store"
)

// AuthHandler handles registration, login and logout routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// RegisterFormData holds data for the registration form template.
type RegisterFormData struct {
	Errors     map[string]string
	FormValues map[string]string
}

// RegisterForm handles GET /register - displays the registration form.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderRegisterForm(w, r, RegisterFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	})
}

// Register handles POST /register - creates a new manager account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectRegister) {
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	password := r.FormValue("password")

	formValues := map[string]string{
		"full_name": fullName,
		"email":     email,
		"phone":     phone,
	}

	validationErrors := make(map[string]string)

	if fullName == "" {
		validationErrors["full_name"] = "Full name is required"
	}
	if phone == "" {
		validationErrors["phone"] = "Phone is required"
	}

	if email == "" {
		validationErrors["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		validationErrors["email"] = "Invalid email format"
	} else {
		// Check if email already exists
		_, err := h.queries.GetUserByEmail(r.Context(), email)
		if err == nil {
			validationErrors["email"] = "Email already registered"
		} else if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("database error checking email", "error", err)
			validationErrors["email"] = "Error checking email"
		}
	}

	if password == "" {
		validationErrors["password"] = "Password is required"
	} else if len(password) < 8 {
		validationErrors["password"] = "Password must be at least 8 characters"
	}

	if len(validationErrors) > 0 {
		h.renderRegisterForm(w, r, RegisterFormData{
			Errors:     validationErrors,
			FormValues: formValues,
		})
		return
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "failed to hash password", "error", err)
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Unique constraint can still fire on a concurrent registration
		if strings.Contains(err.Error(), "UNIQUE") {
			h.renderRegisterForm(w, r, RegisterFormData{
				Errors:     map[string]string{"email": "Email already registered"},
				FormValues: formValues,
			})
			return
		}
		slog.Error("failed to create user", "error", err)
		flashError(w, r, h.renderer, redirectRegister, "Registration failed. Please try again.")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	flashSuccess(w, r, h.renderer, redirectLogin, "Registration successful. Please log in.")
}

func (h *AuthHandler) renderRegisterForm(w http.ResponseWriter, r *http.Request, data RegisterFormData) {
	if err := h.renderer.Render(w, r, "register", render.TemplateData{
		Title: "Register",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render register form", "error", err)
	}
}

// LoginForm handles GET /login - displays the login form.
// Already-authenticated users are sent to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID); userID > 0 {
		http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "login", render.TemplateData{
		Title: "Login",
	}); err != nil {
		logAndInternalError(w, "failed to render login form", "error", err)
	}
}

// Login handles POST /login - verifies credentials and establishes a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Email and password are required")
		return
	}

	// Check if account is locked
	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Account temporarily locked. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent user", "email", email)
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record failed attempt even for non-existent users to prevent enumeration
		h.recordFailureAndRedirect(w, r, email)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, redirectLogin, "Invalid email or password")
		return
	}
	if !valid {
		slog.Debug("invalid password attempt", "email", email)
		h.recordFailureAndRedirect(w, r, email)
		return
	}

	// Clear failed attempts on successful login
	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Update last login timestamp
	if err := h.queries.UpdateUserLastLogin(r.Context(), store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now(), Valid: true},
		ID:          user.ID,
	}); err != nil {
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
		// Don't block login on this error
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserName, user.FullName)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)

	flashSuccess(w, r, h.renderer, redirectDashboard, "Welcome back, "+user.FullName+"!")
}

// recordFailureAndRedirect records a failed login attempt and redirects with
// the appropriate message, including lockout warnings.
func (h *AuthHandler) recordFailureAndRedirect(w http.ResponseWriter, r *http.Request, email string) {
	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Too many failed attempts. Account locked for %s.", formatDuration(lockDuration)))
			return
		}
		remaining := h.loginProtection.GetRemainingAttempts(email)
		if remaining <= 3 && remaining > 0 {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Invalid email or password. %d attempts remaining.", remaining))
			return
		}
	}
	flashError(w, r, h.renderer, redirectLogin, "Invalid email or password")
}

// Logout handles GET /logout - destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "user_id", userID)

	flashAndRedirect(w, r, h.renderer, redirectRoot, "You have been logged out.", "info")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
