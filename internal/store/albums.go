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

const albumColumns = `id, name_en, name_ar, description_en, description_ar, cover_image_url, created_at`

func scanAlbum(row rowScanner) (model.Album, error) {
	var a model.Album
	err := row.Scan(&a.ID, &a.NameEn, &a.NameAr, &a.DescriptionEn, &a.DescriptionAr,
		&a.CoverImageURL, &a.CreatedAt)
	return a, err
}

// ListAlbums returns all albums, newest first.
func (q *Queries) ListAlbums(ctx context.Context) ([]model.Album, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+albumColumns+` FROM albums ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	albums := []model.Album{}
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

// GetAlbumByID returns a single album or sql.ErrNoRows.
func (q *Queries) GetAlbumByID(ctx context.Context, id string) (model.Album, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+albumColumns+` FROM albums WHERE id = ?`, id)
	return scanAlbum(row)
}

// CreateAlbumParams holds the client-settable album fields.
type CreateAlbumParams struct {
	NameEn        string
	NameAr        string
	DescriptionEn string
	DescriptionAr string
	CoverImageURL string
}

// CreateAlbum inserts an album and returns the stored row.
func (q *Queries) CreateAlbum(ctx context.Context, arg CreateAlbumParams) (model.Album, error) {
	id := uuid.NewString()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO albums (id, name_en, name_ar, description_en, description_ar, cover_image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, arg.NameEn, arg.NameAr, arg.DescriptionEn, arg.DescriptionAr,
		arg.CoverImageURL, time.Now().UTC())
	if err != nil {
		return model.Album{}, err
	}
	return q.GetAlbumByID(ctx, id)
}

// UpdateAlbumParams is a partial patch: nil fields are left unchanged.
type UpdateAlbumParams struct {
	NameEn        *string
	NameAr        *string
	DescriptionEn *string
	DescriptionAr *string
	CoverImageURL *string
}

// UpdateAlbum applies the patch and returns the updated row, or sql.ErrNoRows.
func (q *Queries) UpdateAlbum(ctx context.Context, id string, arg UpdateAlbumParams) (model.Album, error) {
	sets := []string{}
	args := []any{}

	appendSet(&sets, &args, "name_en", arg.NameEn)
	appendSet(&sets, &args, "name_ar", arg.NameAr)
	appendSet(&sets, &args, "description_en", arg.DescriptionEn)
	appendSet(&sets, &args, "description_ar", arg.DescriptionAr)
	appendSet(&sets, &args, "cover_image_url", arg.CoverImageURL)

	if len(sets) == 0 {
		return q.GetAlbumByID(ctx, id)
	}

	args = append(args, id)
	res, err := q.db.ExecContext(ctx,
		`UPDATE albums SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return model.Album{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Album{}, err
	} else if n == 0 {
		return model.Album{}, sql.ErrNoRows
	}
	return q.GetAlbumByID(ctx, id)
}

// DeleteAlbum removes an album; its photos go with it via cascade.
func (q *Queries) DeleteAlbum(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	return err
}
