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

const newsColumns = `id, slug, title_en, title_ar, summary_en, summary_ar, content_en,
	content_ar, images, tags, category, status, published_at, created_at, updated_at`

func scanNews(row rowScanner) (model.News, error) {
	var n model.News
	var publishedAt sql.NullTime
	err := row.Scan(&n.ID, &n.Slug, &n.TitleEn, &n.TitleAr, &n.SummaryEn, &n.SummaryAr,
		&n.ContentEn, &n.ContentAr, &n.Images, &n.Tags, &n.Category, &n.Status,
		&publishedAt, &n.CreatedAt, &n.UpdatedAt)
	n.PublishedAt = nullTime(publishedAt)
	return n, err
}

// NewsFilter describes the optional predicates of the news listing. Supplied
// filters combine with AND; zero values impose no constraint, except Status,
// which defaults to published so the public listing never shows drafts unless
// a caller asks for them explicitly.
type NewsFilter struct {
	Search   string   // case-insensitive substring over En/Ar title and summary
	Category string   // exact match
	Year     int      // publication year
	Tags     []string // overlap: at least one shared tag
	Status   string   // defaults to published
	Limit    int      // result cap, 0 = no cap
}

// newsConditions builds the WHERE conjunction for the filter.
func newsConditions(f NewsFilter) ([]string, []any) {
	var conds []string
	var args []any

	status := f.Status
	if status == "" {
		status = model.NewsStatusPublished
	}
	conds = append(conds, "status = ?")
	args = append(args, status)

	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds,
			"(LOWER(title_en) LIKE ? OR LOWER(title_ar) LIKE ? OR LOWER(summary_en) LIKE ? OR LOWER(summary_ar) LIKE ?)")
		args = append(args, pattern, pattern, pattern, pattern)
	}

	if f.Year != 0 {
		conds = append(conds, "CAST(strftime('%Y', published_at) AS INTEGER) = ?")
		args = append(args, f.Year)
	}

	if len(f.Tags) > 0 {
		placeholders := strings.Repeat("?, ", len(f.Tags))
		placeholders = placeholders[:len(placeholders)-2]
		conds = append(conds,
			"EXISTS (SELECT 1 FROM json_each(news.tags) WHERE json_each.value IN ("+placeholders+"))")
		for _, tag := range f.Tags {
			args = append(args, tag)
		}
	}

	return conds, args
}

// ListNews returns articles matching the filter, published first by publish
// date descending; undated rows (drafts) follow, by creation recency.
func (q *Queries) ListNews(ctx context.Context, f NewsFilter) ([]model.News, error) {
	conds, args := newsConditions(f)

	query := `SELECT ` + newsColumns + ` FROM news WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY published_at IS NULL, published_at DESC, created_at DESC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	news := []model.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		news = append(news, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Truncation after the ordered query yields the same visible output as a
	// query-level LIMIT.
	if f.Limit > 0 && len(news) > f.Limit {
		news = news[:f.Limit]
	}
	return news, nil
}

// GetNewsBySlug returns a single article or sql.ErrNoRows.
func (q *Queries) GetNewsBySlug(ctx context.Context, slug string) (model.News, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE slug = ?`, slug)
	return scanNews(row)
}

// GetNewsByID returns a single article or sql.ErrNoRows.
func (q *Queries) GetNewsByID(ctx context.Context, id string) (model.News, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = ?`, id)
	return scanNews(row)
}

// CountNewsBySlug returns the number of articles with the given slug.
func (q *Queries) CountNewsBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM news WHERE slug = ?`, slug).Scan(&count)
	return count, err
}

// CreateNewsParams holds the client-settable article fields.
type CreateNewsParams struct {
	Slug        string
	TitleEn     string
	TitleAr     string
	SummaryEn   string
	SummaryAr   string
	ContentEn   string
	ContentAr   string
	Images      model.StringList
	Tags        model.StringList
	Category    string
	Status      string
	PublishedAt *time.Time
}

// CreateNews inserts an article and returns the stored row. A duplicate slug
// fails on the unique index; IsUniqueViolation identifies that case.
func (q *Queries) CreateNews(ctx context.Context, arg CreateNewsParams) (model.News, error) {
	if arg.Status == "" {
		arg.Status = model.NewsStatusDraft
	}
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO news (id, slug, title_en, title_ar, summary_en, summary_ar,
			content_en, content_ar, images, tags, category, status, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, arg.Slug, arg.TitleEn, arg.TitleAr, arg.SummaryEn, arg.SummaryAr,
		arg.ContentEn, arg.ContentAr, arg.Images, arg.Tags, arg.Category, arg.Status,
		toNullTime(arg.PublishedAt), now, now)
	if err != nil {
		return model.News{}, err
	}
	return q.GetNewsByID(ctx, id)
}

// UpdateNewsParams is a partial patch: nil fields are left unchanged.
type UpdateNewsParams struct {
	Slug        *string
	TitleEn     *string
	TitleAr     *string
	SummaryEn   *string
	SummaryAr   *string
	ContentEn   *string
	ContentAr   *string
	Images      *model.StringList
	Tags        *model.StringList
	Category    *string
	Status      *string
	PublishedAt *time.Time
	// ClearPublishedAt resets published_at to NULL when true.
	ClearPublishedAt bool
}

// UpdateNews applies the patch and returns the updated row, or sql.ErrNoRows.
func (q *Queries) UpdateNews(ctx context.Context, id string, arg UpdateNewsParams) (model.News, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	appendSet(&sets, &args, "slug", arg.Slug)
	appendSet(&sets, &args, "title_en", arg.TitleEn)
	appendSet(&sets, &args, "title_ar", arg.TitleAr)
	appendSet(&sets, &args, "summary_en", arg.SummaryEn)
	appendSet(&sets, &args, "summary_ar", arg.SummaryAr)
	appendSet(&sets, &args, "content_en", arg.ContentEn)
	appendSet(&sets, &args, "content_ar", arg.ContentAr)
	if arg.Images != nil {
		sets = append(sets, "images = ?")
		args = append(args, *arg.Images)
	}
	if arg.Tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, *arg.Tags)
	}
	appendSet(&sets, &args, "category", arg.Category)
	appendSet(&sets, &args, "status", arg.Status)
	switch {
	case arg.ClearPublishedAt:
		sets = append(sets, "published_at = NULL")
	case arg.PublishedAt != nil:
		sets = append(sets, "published_at = ?")
		args = append(args, *arg.PublishedAt)
	}

	args = append(args, id)
	res, err := q.db.ExecContext(ctx,
		`UPDATE news SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return model.News{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.News{}, err
	} else if n == 0 {
		return model.News{}, sql.ErrNoRows
	}
	return q.GetNewsByID(ctx, id)
}

// DeleteNews removes an article.
func (q *Queries) DeleteNews(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	return err
}
