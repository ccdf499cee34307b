// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ffj-site/internal/model"
)

const pageColumns = `id, slug, title_en, title_ar, content_en, content_ar, status, created_at, updated_at`

func scanPage(row rowScanner) (model.Page, error) {
	var p model.Page
	err := row.Scan(&p.ID, &p.Slug, &p.TitleEn, &p.TitleAr, &p.ContentEn, &p.ContentAr,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListPages returns all pages, most recently updated first.
func (q *Queries) ListPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	pages := []model.Page{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetPageBySlug returns a single page or sql.ErrNoRows.
func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (model.Page, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = ?`, slug)
	return scanPage(row)
}

// GetPageByID returns a single page or sql.ErrNoRows.
func (q *Queries) GetPageByID(ctx context.Context, id string) (model.Page, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	return scanPage(row)
}

// CountPagesBySlug returns the number of pages with the given slug.
func (q *Queries) CountPagesBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pages WHERE slug = ?`, slug).Scan(&count)
	return count, err
}

// CreatePageParams holds the client-settable page fields.
type CreatePageParams struct {
	Slug      string
	TitleEn   string
	TitleAr   string
	ContentEn string
	ContentAr string
	Status    string
}

// CreatePage inserts a page and returns the stored row. Pages default to
// published.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (model.Page, error) {
	if arg.Status == "" {
		arg.Status = model.PageStatusPublished
	}
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO pages (id, slug, title_en, title_ar, content_en, content_ar, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, arg.Slug, arg.TitleEn, arg.TitleAr, arg.ContentEn, arg.ContentAr,
		arg.Status, now, now)
	if err != nil {
		return model.Page{}, err
	}
	return q.GetPageByID(ctx, id)
}

// UpdatePageParams is a partial patch: nil fields are left unchanged.
type UpdatePageParams struct {
	Slug      *string
	TitleEn   *string
	TitleAr   *string
	ContentEn *string
	ContentAr *string
	Status    *string
}

// UpdatePage applies the patch and returns the updated row, or sql.ErrNoRows.
func (q *Queries) UpdatePage(ctx context.Context, id string, arg UpdatePageParams) (model.Page, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	appendSet(&sets, &args, "slug", arg.Slug)
	appendSet(&sets, &args, "title_en", arg.TitleEn)
	appendSet(&sets, &args, "title_ar", arg.TitleAr)
	appendSet(&sets, &args, "content_en", arg.ContentEn)
	appendSet(&sets, &args, "content_ar", arg.ContentAr)
	appendSet(&sets, &args, "status", arg.Status)

	args = append(args, id)
	res, err := q.db.ExecContext(ctx,
		`UPDATE pages SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return model.Page{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Page{}, err
	} else if n == 0 {
		return model.Page{}, sql.ErrNoRows
	}
	return q.GetPageByID(ctx, id)
}

// DeletePage removes a page.
func (q *Queries) DeletePage(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	return err
}
