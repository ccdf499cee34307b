// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Database is the SQLite database file path. In development an empty value
	// falls back to ./data/ffj.db; in production it is required.
	Database      string `env:"FFJ_DATABASE"`
	SessionSecret string `env:"FFJ_SESSION_SECRET,required"`
	ServerHost    string `env:"FFJ_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FFJ_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FFJ_ENV" envDefault:"development"`
	LogLevel      string `env:"FFJ_LOG_LEVEL" envDefault:"info"`

	// OIDC configuration
	OIDCIssuer       string   `env:"FFJ_OIDC_ISSUER,required"`
	OIDCClientID     string   `env:"FFJ_OIDC_CLIENT_ID,required"`
	OIDCClientSecret string   `env:"FFJ_OIDC_CLIENT_SECRET"`
	AllowedHosts     []string `env:"FFJ_ALLOWED_HOSTS,required"` // Hostnames permitted for OIDC callbacks

	// Cache configuration
	RedisURL     string `env:"FFJ_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"FFJ_CACHE_PREFIX" envDefault:"ffj:"`   // Redis key prefix
	CacheTTL     int    `env:"FFJ_CACHE_TTL" envDefault:"300"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"FFJ_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries

	// Seeding configuration
	DoSeed bool `env:"FFJ_DO_SEED" envDefault:"false"` // Seed the static pages on startup
}

// DefaultDatabasePath is the development fallback when FFJ_DATABASE is unset.
const DefaultDatabasePath = "./data/ffj.db"

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// HostAllowed reports whether host (without port) may be used as an OIDC
// callback destination.
func (c Config) HostAllowed(host string) bool {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	for _, h := range c.AllowedHosts {
		if strings.EqualFold(strings.TrimSpace(h), host) {
			return true
		}
	}
	return false
}

// Load parses environment variables and returns a Config struct.
// Absence of any required value is a fatal startup error by contract; the only
// exception is the database path, which falls back to a local file in
// development.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("FFJ_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	if cfg.Database == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("FFJ_DATABASE is required when FFJ_ENV=%s", cfg.Env)
		}
		cfg.Database = DefaultDatabasePath
	}

	return cfg, nil
}
