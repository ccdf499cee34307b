// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/olegiv/ffj-site/internal/config"
	"github.com/olegiv/ffj-site/internal/model"
	"github.com/olegiv/ffj-site/internal/oidc"
	"github.com/olegiv/ffj-site/internal/session"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			profile_image_url TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'editor',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("failed to create users table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// testProvider runs a fake OpenID Connect provider.
func testProvider(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(oidc.ProviderMetadata{
			Issuer:                srv.URL,
			AuthorizationEndpoint: srv.URL + "/authorize",
			TokenEndpoint:         srv.URL + "/token",
			UserinfoEndpoint:      srv.URL + "/userinfo",
			EndSessionEndpoint:    srv.URL + "/end-session",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","refresh_token":"rt-456","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(oidc.Claims{
			Sub:        "sub-42",
			Email:      "amal@example.org",
			GivenName:  "Amal",
			FamilyName: "Haddad",
		})
	})

	return srv
}

func newAuthHandler(t *testing.T) (*AuthHandler, *scs.SessionManager, *sql.DB) {
	t.Helper()
	db := setupTestDB(t)
	srv := testProvider(t)

	client, err := oidc.Discover(context.Background(), srv.URL, "client-id", "client-secret")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	cfg := &config.Config{
		Env:          "development",
		AllowedHosts: []string{"example.com"},
	}
	sm := scs.New()
	return NewAuthHandler(db, sm, client, cfg), sm, db
}

// serveWithSession runs the handler inside a loaded session, applying setup
// to the session context first.
func serveWithSession(sm *scs.SessionManager, req *http.Request, setup func(ctx context.Context), h http.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if setup != nil {
			setup(r.Context())
		}
		h(w, r)
	})).ServeHTTP(rec, req)
	return rec
}

func TestLoginRedirectsToProvider(t *testing.T) {
	h, sm, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	rec := serveWithSession(sm, req, nil, h.Login)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 (body %q)", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "/authorize") {
		t.Errorf("redirect = %q, want provider authorize URL", loc)
	}
	if !strings.Contains(loc, "state=") {
		t.Errorf("redirect %q carries no state", loc)
	}
	if !strings.Contains(loc, "redirect_uri=") {
		t.Errorf("redirect %q carries no redirect_uri", loc)
	}
}

func TestLoginRejectsUnknownHost(t *testing.T) {
	h, sm, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "http://evil.test/api/login", nil)
	rec := serveWithSession(sm, req, nil, h.Login)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCallbackRejectsStateMismatch(t *testing.T) {
	h, sm, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/callback?state=forged&code=abc", nil)
	rec := serveWithSession(sm, req, func(ctx context.Context) {
		sm.Put(ctx, session.KeyOAuthState, "expected")
	}, h.Callback)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCallbackRejectsMissingState(t *testing.T) {
	h, sm, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/callback?state=anything&code=abc", nil)
	rec := serveWithSession(sm, req, nil, h.Callback)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCallbackEstablishesSession(t *testing.T) {
	h, sm, db := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/callback?state=good&code=auth-code", nil)
	var gotUserID string
	rec := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), session.KeyOAuthState, "good")
		h.Callback(w, r)
		gotUserID = sm.GetString(r.Context(), session.KeyUserID)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect = %q, want /", loc)
	}
	if gotUserID != "sub-42" {
		t.Errorf("session user_id = %q, want sub-42", gotUserID)
	}

	var role, email string
	if err := db.QueryRow("SELECT role, email FROM users WHERE id = 'sub-42'").Scan(&role, &email); err != nil {
		t.Fatalf("user not upserted: %v", err)
	}
	if role != model.RoleEditor {
		t.Errorf("role = %q, want default editor", role)
	}
	if email != "amal@example.org" {
		t.Errorf("email = %q", email)
	}
}

func TestCallbackKeepsExistingRole(t *testing.T) {
	h, sm, db := newAuthHandler(t)

	if _, err := db.Exec("INSERT INTO users (id, email, role) VALUES ('sub-42', 'amal@example.org', 'admin')"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/callback?state=good&code=auth-code", nil)
	rec := serveWithSession(sm, req, func(ctx context.Context) {
		sm.Put(ctx, session.KeyOAuthState, "good")
	}, h.Callback)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var role string
	if err := db.QueryRow("SELECT role FROM users WHERE id = 'sub-42'").Scan(&role); err != nil {
		t.Fatal(err)
	}
	if role != model.RoleAdmin {
		t.Errorf("role = %q, login must not demote admins", role)
	}
}

func TestCurrentUser(t *testing.T) {
	h, sm, db := newAuthHandler(t)

	if _, err := db.Exec("INSERT INTO users (id, email) VALUES ('sub-42', 'amal@example.org')"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	rec := serveWithSession(sm, req, func(ctx context.Context) {
		sm.Put(ctx, session.KeyUserID, "sub-42")
	}, h.CurrentUser)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	var user model.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decoding user: %v", err)
	}
	if user.ID != "sub-42" || user.Email != "amal@example.org" {
		t.Errorf("user = %+v", user)
	}
}

func TestCurrentUserUnknownID(t *testing.T) {
	h, sm, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	rec := serveWithSession(sm, req, func(ctx context.Context) {
		sm.Put(ctx, session.KeyUserID, "ghost")
	}, h.CurrentUser)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLogoutRedirectsToEndSession(t *testing.T) {
	h, sm, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/logout", nil)
	rec := serveWithSession(sm, req, func(ctx context.Context) {
		sm.Put(ctx, session.KeyUserID, "sub-42")
	}, h.Logout)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "/end-session") {
		t.Errorf("redirect = %q, want provider end-session URL", loc)
	}
	if !strings.Contains(loc, "post_logout_redirect_uri=") {
		t.Errorf("redirect %q carries no post-logout URI", loc)
	}
}
