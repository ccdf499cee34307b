// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"

	"github.com/olegiv/ffj-site/internal/cache"
)

const testSchema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL DEFAULT '',
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	profile_image_url TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'editor',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE projects (
	id TEXT PRIMARY KEY,
	name_en TEXT NOT NULL,
	name_ar TEXT NOT NULL DEFAULT '',
	description_en TEXT NOT NULL,
	description_ar TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL,
	demo_url TEXT NOT NULL DEFAULT '',
	technologies TEXT NOT NULL DEFAULT '[]',
	is_featured INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'active',
	progress INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE project_images (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	url TEXT NOT NULL,
	caption_en TEXT NOT NULL DEFAULT '',
	caption_ar TEXT NOT NULL DEFAULT '',
	order_index INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE contact_messages (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE news (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL,
	title_en TEXT NOT NULL,
	title_ar TEXT NOT NULL DEFAULT '',
	summary_en TEXT NOT NULL DEFAULT '',
	summary_ar TEXT NOT NULL DEFAULT '',
	content_en TEXT NOT NULL DEFAULT '',
	content_ar TEXT NOT NULL DEFAULT '',
	images TEXT NOT NULL DEFAULT '[]',
	tags TEXT NOT NULL DEFAULT '[]',
	category TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft',
	published_at TIMESTAMP,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX idx_news_slug ON news(slug);
CREATE TABLE pages (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL,
	title_en TEXT NOT NULL DEFAULT '',
	title_ar TEXT NOT NULL DEFAULT '',
	content_en TEXT NOT NULL DEFAULT '',
	content_ar TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'published',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX idx_pages_slug ON pages(slug);
CREATE TABLE albums (
	id TEXT PRIMARY KEY,
	name_en TEXT NOT NULL,
	name_ar TEXT NOT NULL DEFAULT '',
	description_en TEXT NOT NULL DEFAULT '',
	description_ar TEXT NOT NULL DEFAULT '',
	cover_image_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE photos (
	id TEXT PRIMARY KEY,
	album_id TEXT NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
	url TEXT NOT NULL,
	caption_en TEXT NOT NULL DEFAULT '',
	caption_ar TEXT NOT NULL DEFAULT '',
	order_index INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// newTestServer builds a handler over an in-memory database and mounts every
// route without the auth gates; gating itself is covered elsewhere.
func newTestServer(t *testing.T) (*Handler, *chi.Mux, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	content := cache.NewContent(cache.New(cache.Options{
		DefaultTTL: time.Minute,
		MaxSize:    100,
	}), time.Minute)
	t.Cleanup(func() { _ = content.Close() })

	h := NewHandler(db, content)

	r := chi.NewRouter()
	r.Get("/api/projects", h.ListProjects)
	r.Get("/api/projects/{id}", h.GetProject)
	r.Post("/api/projects", h.CreateProject)
	r.Put("/api/projects/{id}", h.UpdateProject)
	r.Delete("/api/projects/{id}", h.DeleteProject)
	r.Get("/api/projects/{id}/images", h.ListProjectImages)
	r.Post("/api/projects/{id}/images", h.CreateProjectImage)
	r.Put("/api/project-images/{imageId}", h.UpdateProjectImage)
	r.Delete("/api/project-images/{imageId}", h.DeleteProjectImage)
	r.Get("/api/news", h.ListNews)
	r.Get("/api/news/{slug}", h.GetNews)
	r.Post("/api/news", h.CreateNews)
	r.Put("/api/news/{id}", h.UpdateNews)
	r.Delete("/api/news/{id}", h.DeleteNews)
	r.Get("/api/pages", h.ListPages)
	r.Get("/api/pages/{slug}", h.GetPage)
	r.Post("/api/pages", h.CreatePage)
	r.Put("/api/pages/{id}", h.UpdatePage)
	r.Delete("/api/pages/{id}", h.DeletePage)
	r.Get("/api/albums", h.ListAlbums)
	r.Get("/api/albums/{id}", h.GetAlbum)
	r.Post("/api/albums", h.CreateAlbum)
	r.Put("/api/albums/{id}", h.UpdateAlbum)
	r.Delete("/api/albums/{id}", h.DeleteAlbum)
	r.Post("/api/albums/{id}/photos", h.CreatePhoto)
	r.Put("/api/photos/{photoId}", h.UpdatePhoto)
	r.Delete("/api/photos/{photoId}", h.DeletePhoto)
	r.Post("/api/contact", h.CreateContactMessage)
	r.Get("/api/contact-messages", h.ListContactMessages)

	return h, r, db
}

// doJSON performs a request with an optional JSON body and returns the
// recorded response.
func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// newRawRequest builds a request with a literal body, for malformed input.
func newRawRequest(t *testing.T, method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

// decodeResponse unmarshals the recorded JSON body into dst.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

// wantMessage asserts the status code and message envelope.
func wantMessage(t *testing.T, rec *httptest.ResponseRecorder, statusCode int, message string) {
	t.Helper()
	if rec.Code != statusCode {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, statusCode, rec.Body.String())
	}
	var resp MessageResponse
	decodeResponse(t, rec, &resp)
	if resp.Message != message {
		t.Errorf("message = %q, want %q", resp.Message, message)
	}
}
