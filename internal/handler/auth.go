// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the non-CRUD HTTP handlers: the OpenID Connect
// login flow and the health endpoint.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ffj-site/internal/config"
	"github.com/olegiv/ffj-site/internal/oidc"
	"github.com/olegiv/ffj-site/internal/session"
	"github.com/olegiv/ffj-site/internal/store"
)

// AuthHandler drives the OpenID Connect login flow and exposes the current
// user. Sessions are the only credential the browser ever holds; provider
// tokens stay server-side.
type AuthHandler struct {
	queries *store.Queries
	sm      *scs.SessionManager
	oidc    *oidc.Client
	cfg     *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, sm *scs.SessionManager, client *oidc.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		queries: store.New(db),
		sm:      sm,
		oidc:    client,
		cfg:     cfg,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}

// callbackURL builds the OIDC redirect URI for the requesting host. The host
// has already passed the allow-list check.
func (h *AuthHandler) callbackURL(r *http.Request) string {
	scheme := "https"
	if h.cfg.IsDevelopment() {
		scheme = "http"
	}
	return scheme + "://" + r.Host + "/api/callback"
}

// Login handles GET /api/login: stores a fresh state value in the session
// and redirects to the provider's authorization endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.HostAllowed(r.Host) {
		slog.Warn("login from disallowed host", "host", r.Host)
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	state, err := oidc.GenerateState()
	if err != nil {
		slog.Error("state generation failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to start login")
		return
	}

	ctx := r.Context()
	if err := h.sm.RenewToken(ctx); err != nil {
		slog.Error("session renew failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to start login")
		return
	}
	h.sm.Put(ctx, session.KeyOAuthState, state)

	http.Redirect(w, r, h.oidc.AuthCodeURL(state, h.callbackURL(r)), http.StatusFound)
}

// Callback handles GET /api/callback: verifies the state, exchanges the
// code, upserts the user and establishes the session.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.HostAllowed(r.Host) {
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	ctx := r.Context()
	state := h.sm.PopString(ctx, session.KeyOAuthState)
	if state == "" || state != r.URL.Query().Get("state") {
		slog.Warn("oauth state mismatch", "category", "auth")
		writeMessage(w, http.StatusBadRequest, "Invalid state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeMessage(w, http.StatusBadRequest, "Missing code")
		return
	}

	token, err := h.oidc.Exchange(ctx, code, h.callbackURL(r))
	if err != nil {
		slog.Error("code exchange failed", "error", err, "category", "auth")
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	claims, err := h.oidc.UserInfo(ctx, token)
	if err != nil {
		slog.Error("userinfo fetch failed", "error", err, "category", "auth")
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.queries.UpsertUser(ctx, store.UpsertUserParams{
		ID:              claims.Sub,
		Email:           claims.Email,
		FirstName:       claims.GivenName,
		LastName:        claims.FamilyName,
		ProfileImageURL: claims.Picture,
	})
	if err != nil {
		slog.Error("user upsert failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	// Session fixation protection: new session ID on privilege change.
	if err := h.sm.RenewToken(ctx); err != nil {
		slog.Error("session renew failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	h.sm.Put(ctx, session.KeyUserID, user.ID)
	h.sm.Put(ctx, session.KeyAccessToken, token.AccessToken)
	if token.RefreshToken != "" {
		h.sm.Put(ctx, session.KeyRefreshToken, token.RefreshToken)
	}
	if !token.Expiry.IsZero() {
		h.sm.Put(ctx, session.KeyTokenExpiry, token.Expiry)
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email, "category", "auth")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles GET /api/logout: destroys the session and sends the browser
// to the provider's end-session endpoint when it advertises one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := h.sm.GetString(ctx, session.KeyUserID)
	if err := h.sm.Destroy(ctx); err != nil {
		slog.Error("session destroy failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	if userID != "" {
		slog.Info("user logged out", "user_id", userID, "category", "auth")
	}

	scheme := "https"
	if h.cfg.IsDevelopment() {
		scheme = "http"
	}
	target := h.oidc.EndSessionURL(scheme + "://" + r.Host + "/")
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// CurrentUser handles GET /api/auth/user. Runs behind the auth middleware,
// so a missing session never reaches here.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := h.sm.GetString(ctx, session.KeyUserID)
	if userID == "" {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.queries.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		slog.Error("fetch user failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
