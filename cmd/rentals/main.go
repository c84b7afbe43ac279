// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/rentals-go/internal/config"
	"github.com/olegiv/rentals-go/internal/handler"
	"github.com/olegiv/rentals-go/internal/middleware"
	"github.com/olegiv/rentals-go/internal/render"
	"github.com/olegiv/rentals-go/internal/session"
	"github.com/olegiv/rentals-go/internal/store"
	"github.com/olegiv/rentals-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Rentals - Property Management System\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RENTALS_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RENTALS_DB_PATH           SQLite database path (default: ./data/rentals.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RENTALS_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RENTALS_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RENTALS_LOG_LEVEL         Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RENTALS_DO_SEED           Seed sample apartments and tenants on startup (default: false)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("rentals %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Seed sample data
	if cfg.DoSeed {
		if err := store.Seed(context.Background(), db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		slog.Info("sample data seeded")
	}

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Initialize template renderer
	renderer, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: sessionManager,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Initialize login protection
	lpConfig := middleware.DefaultLoginProtectionConfig()
	loginProtection := middleware.NewLoginProtection(lpConfig)
	slog.Info("login protection initialized",
		"max_failed_attempts", lpConfig.MaxFailedAttempts,
		"lockout_duration", lpConfig.LockoutDuration,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	homeHandler := handler.NewHomeHandler(db, renderer)
	dashboardHandler := handler.NewDashboardHandler(db, renderer)
	apartmentsHandler := handler.NewApartmentsHandler(db, renderer)
	tenantsHandler := handler.NewTenantsHandler(db, renderer)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)

	// Security headers middleware (CSP, HSTS, X-Frame-Options, etc.)
	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	// Request path middleware for logging context
	r.Use(middleware.RequestPath)

	r.Use(sessionManager.LoadAndSave)

	// CSRF protection middleware (applied globally)
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	r.Use(middleware.CSRF(csrfConfig))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Health check route
	r.Get(handler.RouteHealth, homeHandler.Health)

	// Public routes
	r.Get(handler.RouteRoot, homeHandler.Index)
	r.Get(handler.RouteRegister, authHandler.RegisterForm)
	r.Post(handler.RouteRegister, authHandler.Register)
	r.Get(handler.RouteLogin, authHandler.LoginForm)
	r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
	r.Get(handler.RouteLogout, authHandler.Logout)
	r.Post(handler.RouteLogout, authHandler.Logout)

	// Manager routes (session required)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))

		r.Get(handler.RouteDashboard, dashboardHandler.Show)

		r.Get(handler.RouteAddApartment, apartmentsHandler.NewForm)
		r.Post(handler.RouteAddApartment, apartmentsHandler.Create)
		r.Get(handler.RouteManageApartments, apartmentsHandler.List)
		r.Get(handler.RouteEditApartmentID, apartmentsHandler.EditForm)
		r.Post(handler.RouteEditApartmentID, apartmentsHandler.Update)
		r.Post(handler.RouteDeleteApartmentID, apartmentsHandler.Delete)

		r.Get(handler.RouteAddTenant, tenantsHandler.NewForm)
		r.Post(handler.RouteAddTenant, tenantsHandler.Create)
		r.Get(handler.RouteManageTenants, tenantsHandler.List)
		r.Get(handler.RouteEditTenantID, tenantsHandler.EditForm)
		r.Post(handler.RouteEditTenantID, tenantsHandler.Update)
		r.Post(handler.RouteDeleteTenantID, tenantsHandler.Delete)
	})

	// Static file serving
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
