// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// ffjsite is the bilingual portfolio and content site server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/ffj-site/internal/cache"
	"github.com/olegiv/ffj-site/internal/config"
	"github.com/olegiv/ffj-site/internal/handler"
	"github.com/olegiv/ffj-site/internal/handler/api"
	"github.com/olegiv/ffj-site/internal/logging"
	"github.com/olegiv/ffj-site/internal/middleware"
	"github.com/olegiv/ffj-site/internal/oidc"
	"github.com/olegiv/ffj-site/internal/session"
	"github.com/olegiv/ffj-site/internal/store"
	"github.com/olegiv/ffj-site/internal/version"
)

// Build-time injected values (via -ldflags).
var (
	appVersion   string
	appGitCommit string
	appBuildTime string
)

// Per-IP limit for the public contact form.
const (
	contactRPS   = 0.2 // one message per 5 seconds sustained
	contactBurst = 3
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ffjsite - bilingual portfolio and content site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FFJ_SESSION_SECRET     Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FFJ_DATABASE           SQLite database path (default: ./data/ffj.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FFJ_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FFJ_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FFJ_OIDC_ISSUER        OpenID Connect issuer URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FFJ_OIDC_CLIENT_ID     OpenID Connect client ID (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FFJ_ALLOWED_HOSTS      Comma-separated hostnames for OIDC callbacks (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FFJ_REDIS_URL          Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FFJ_DO_SEED            Seed static pages on startup (default: false)\n")
	}

	flag.Parse()

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("ffjsite %s\n", info)
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

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(textHandler))

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.Database)
	db, err := store.NewDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Upgrade the logger so warnings and errors also land in the events table.
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, db)))

	if err := store.Seed(context.Background(), db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	contentCache := cache.NewContent(cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	}), time.Duration(cfg.CacheTTL)*time.Second)
	defer func() {
		if err := contentCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	discoverCtx, cancelDiscover := context.WithTimeout(context.Background(), 15*time.Second)
	oidcClient, err := oidc.Discover(discoverCtx, cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret)
	cancelDiscover()
	if err != nil {
		return fmt.Errorf("discovering OIDC provider: %w", err)
	}
	slog.Info("OIDC provider discovered", "issuer", cfg.OIDCIssuer)

	sm := session.New(db, cfg.IsDevelopment())
	queries := store.New(db)

	authHandler := handler.NewAuthHandler(db, sm, oidcClient, cfg)
	healthHandler := handler.NewHealthHandler(db)
	apiHandler := api.NewHandler(db, contentCache)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(sm.LoadAndSave)

	registerAPIRoutes(r, apiHandler, authHandler, healthHandler, sm, queries, oidcClient)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// registerAPIRoutes mounts every endpoint under /api. Reads are public;
// writes require at least the editor role and deletes the admin role.
func registerAPIRoutes(r chi.Router, h *api.Handler, auth *handler.AuthHandler,
	health *handler.HealthHandler, sm *scs.SessionManager, queries *store.Queries,
	refresher middleware.TokenRefresher) {

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Health)

		// OIDC login flow
		r.Get("/login", auth.Login)
		r.Get("/callback", auth.Callback)
		r.Get("/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sm, refresher))
			r.Get("/auth/user", auth.CurrentUser)
		})

		// Public reads
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/{id}", h.GetProject)
		r.Get("/projects/{id}/images", h.ListProjectImages)
		r.Get("/news", h.ListNews)
		r.Get("/news/{slug}", h.GetNews)
		r.Get("/pages", h.ListPages)
		r.Get("/pages/{slug}", h.GetPage)
		r.Get("/albums", h.ListAlbums)
		r.Get("/albums/{id}", h.GetAlbum)

		// Public contact form, rate limited per IP
		r.Group(func(r chi.Router) {
			r.Use(middleware.IPRateLimit(contactRPS, contactBurst))
			r.Post("/contact", h.CreateContactMessage)
		})

		// Editor endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sm, refresher))
			r.Use(middleware.RequireEditor(sm, queries))

			r.Get("/contact-messages", h.ListContactMessages)

			r.Post("/projects", h.CreateProject)
			r.Put("/projects/{id}", h.UpdateProject)
			r.Post("/projects/{id}/images", h.CreateProjectImage)
			r.Put("/project-images/{imageId}", h.UpdateProjectImage)

			r.Post("/news", h.CreateNews)
			r.Put("/news/{id}", h.UpdateNews)

			r.Post("/pages", h.CreatePage)
			r.Put("/pages/{id}", h.UpdatePage)

			r.Post("/albums", h.CreateAlbum)
			r.Put("/albums/{id}", h.UpdateAlbum)
			r.Post("/albums/{id}/photos", h.CreatePhoto)
			r.Put("/photos/{photoId}", h.UpdatePhoto)
		})

		// Admin endpoints: destructive operations on content entities
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sm, refresher))
			r.Use(middleware.RequireAdmin(sm, queries))

			r.Delete("/projects/{id}", h.DeleteProject)
			r.Delete("/project-images/{imageId}", h.DeleteProjectImage)
			r.Delete("/news/{id}", h.DeleteNews)
			r.Delete("/pages/{id}", h.DeletePage)
			r.Delete("/albums/{id}", h.DeleteAlbum)
			r.Delete("/photos/{photoId}", h.DeletePhoto)
		})
	})
}
