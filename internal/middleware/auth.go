// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request rate limiting.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/oauth2"

	"github.com/olegiv/ffj-site/internal/model"
	"github.com/olegiv/ffj-site/internal/session"
	"github.com/olegiv/ffj-site/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key for the authenticated user.
const ContextKeyUser ContextKey = "user"

// TokenRefresher exchanges a refresh token for a new token set.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// writeMessage writes the API error envelope.
func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// RequireAuth creates middleware that requires a logged-in session.
// An expired access token gets one refresh attempt; when that fails the
// session is destroyed and the request is rejected.
func RequireAuth(sm *scs.SessionManager, refresher TokenRefresher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), session.KeyUserID)
			if userID == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			expiry := sm.GetTime(r.Context(), session.KeyTokenExpiry)
			if !expiry.IsZero() && time.Now().After(expiry) {
				if !refreshTokens(r.Context(), sm, refresher) {
					_ = sm.Destroy(r.Context())
					writeMessage(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// refreshTokens performs a single refresh attempt and stores the new token
// set in the session.
func refreshTokens(ctx context.Context, sm *scs.SessionManager, refresher TokenRefresher) bool {
	if refresher == nil {
		return false
	}

	refreshToken := sm.GetString(ctx, session.KeyRefreshToken)
	token, err := refresher.Refresh(ctx, refreshToken)
	if err != nil {
		slog.Warn("token refresh failed", "error", err)
		return false
	}

	sm.Put(ctx, session.KeyAccessToken, token.AccessToken)
	if token.RefreshToken != "" {
		sm.Put(ctx, session.KeyRefreshToken, token.RefreshToken)
	}
	sm.Put(ctx, session.KeyTokenExpiry, token.Expiry)
	return true
}

// roleLevel returns a numeric level for role hierarchy.
// Higher level = more permissions. Unknown roles have no access.
func roleLevel(role string) int {
	switch role {
	case model.RoleAdmin:
		return 2
	case model.RoleEditor:
		return 1
	default:
		return 0
	}
}

// RequireRole creates middleware that requires a minimum user role.
// Roles are hierarchical: admin > editor. The user record is loaded fresh
// from storage so role changes take effect on the next request.
func RequireRole(sm *scs.SessionManager, queries *store.Queries, minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), session.KeyUserID)
			if userID == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := queries.GetUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					writeMessage(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				slog.Error("failed to load user for role check", "error", err, "user_id", userID)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			if roleLevel(user.Role) < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
					"required_role", minRole,
					"remote_addr", r.RemoteAddr,
				)
				writeMessage(w, http.StatusForbidden, "Forbidden")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireEditor creates middleware that requires at least editor role.
// Allows both admin and editor users.
func RequireEditor(sm *scs.SessionManager, queries *store.Queries) func(http.Handler) http.Handler {
	return RequireRole(sm, queries, model.RoleEditor)
}

// RequireAdmin creates middleware that requires admin role.
func RequireAdmin(sm *scs.SessionManager, queries *store.Queries) func(http.Handler) http.Handler {
	return RequireRole(sm, queries, model.RoleAdmin)
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID from context, or "" if not found.
func GetUserID(r *http.Request) string {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return ""
}
