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

const photoColumns = `id, album_id, url, caption_en, caption_ar, order_index, created_at`

func scanPhoto(row rowScanner) (model.Photo, error) {
	var p model.Photo
	err := row.Scan(&p.ID, &p.AlbumID, &p.URL, &p.CaptionEn, &p.CaptionAr,
		&p.OrderIndex, &p.CreatedAt)
	return p, err
}

// ListPhotosByAlbum returns an album's photos in display order.
func (q *Queries) ListPhotosByAlbum(ctx context.Context, albumID string) ([]model.Photo, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE album_id = ? ORDER BY order_index`, albumID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	photos := []model.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// GetPhotoByID returns a single photo or sql.ErrNoRows.
func (q *Queries) GetPhotoByID(ctx context.Context, id string) (model.Photo, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE id = ?`, id)
	return scanPhoto(row)
}

// CreatePhotoParams holds the client-settable photo fields.
type CreatePhotoParams struct {
	AlbumID    string
	URL        string
	CaptionEn  string
	CaptionAr  string
	OrderIndex int64
}

// CreatePhoto inserts a photo row for an album.
func (q *Queries) CreatePhoto(ctx context.Context, arg CreatePhotoParams) (model.Photo, error) {
	id := uuid.NewString()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO photos (id, album_id, url, caption_en, caption_ar, order_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, arg.AlbumID, arg.URL, arg.CaptionEn, arg.CaptionAr, arg.OrderIndex,
		time.Now().UTC())
	if err != nil {
		return model.Photo{}, err
	}
	return q.GetPhotoByID(ctx, id)
}

// UpdatePhotoParams is a partial patch: nil fields are left unchanged.
type UpdatePhotoParams struct {
	URL        *string
	CaptionEn  *string
	CaptionAr  *string
	OrderIndex *int64
}

// UpdatePhoto applies the patch, or returns sql.ErrNoRows.
func (q *Queries) UpdatePhoto(ctx context.Context, id string, arg UpdatePhotoParams) (model.Photo, error) {
	sets := []string{}
	args := []any{}

	appendSet(&sets, &args, "url", arg.URL)
	appendSet(&sets, &args, "caption_en", arg.CaptionEn)
	appendSet(&sets, &args, "caption_ar", arg.CaptionAr)
	if arg.OrderIndex != nil {
		sets = append(sets, "order_index = ?")
		args = append(args, *arg.OrderIndex)
	}

	if len(sets) == 0 {
		return q.GetPhotoByID(ctx, id)
	}

	args = append(args, id)
	res, err := q.db.ExecContext(ctx,
		`UPDATE photos SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return model.Photo{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Photo{}, err
	} else if n == 0 {
		return model.Photo{}, sql.ErrNoRows
	}
	return q.GetPhotoByID(ctx, id)
}

// DeletePhoto removes a single photo row.
func (q *Queries) DeletePhoto(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	return err
}
