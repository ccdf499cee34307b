// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates an in-memory SQLite database with the full schema for testing.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A single connection keeps every statement on the same in-memory database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	schema := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			profile_image_url TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'editor',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX idx_users_email ON users(email) WHERE email <> '';

		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'system',
			message TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
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
			is_featured BOOLEAN NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active',
			progress INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE project_images (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			caption_en TEXT NOT NULL DEFAULT '',
			caption_ar TEXT NOT NULL DEFAULT '',
			order_index INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE contact_messages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
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
			published_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
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
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX idx_pages_slug ON pages(slug);

		CREATE TABLE albums (
			id TEXT PRIMARY KEY,
			name_en TEXT NOT NULL,
			name_ar TEXT NOT NULL DEFAULT '',
			description_en TEXT NOT NULL DEFAULT '',
			description_ar TEXT NOT NULL DEFAULT '',
			cover_image_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE photos (
			id TEXT PRIMARY KEY,
			album_id TEXT NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			caption_en TEXT NOT NULL DEFAULT '',
			caption_ar TEXT NOT NULL DEFAULT '',
			order_index INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testQueries creates a test database and its Queries instance.
func testQueries(t *testing.T) (*Queries, context.Context) {
	t.Helper()
	return New(testDB(t)), context.Background()
}
