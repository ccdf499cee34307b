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

const projectImageColumns = `id, project_id, url, caption_en, caption_ar, order_index, created_at`

func scanProjectImage(row rowScanner) (model.ProjectImage, error) {
	var img model.ProjectImage
	err := row.Scan(&img.ID, &img.ProjectID, &img.URL, &img.CaptionEn, &img.CaptionAr,
		&img.OrderIndex, &img.CreatedAt)
	return img, err
}

// ListProjectImages returns a project's images in display order.
func (q *Queries) ListProjectImages(ctx context.Context, projectID string) ([]model.ProjectImage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+projectImageColumns+` FROM project_images WHERE project_id = ? ORDER BY order_index`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	images := []model.ProjectImage{}
	for rows.Next() {
		img, err := scanProjectImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// GetProjectImageByID returns a single project image or sql.ErrNoRows.
func (q *Queries) GetProjectImageByID(ctx context.Context, id string) (model.ProjectImage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+projectImageColumns+` FROM project_images WHERE id = ?`, id)
	return scanProjectImage(row)
}

// CreateProjectImageParams holds the client-settable project-image fields.
type CreateProjectImageParams struct {
	ProjectID  string
	URL        string
	CaptionEn  string
	CaptionAr  string
	OrderIndex int64
}

// CreateProjectImage inserts an image row for a project.
func (q *Queries) CreateProjectImage(ctx context.Context, arg CreateProjectImageParams) (model.ProjectImage, error) {
	id := uuid.NewString()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO project_images (id, project_id, url, caption_en, caption_ar, order_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, arg.ProjectID, arg.URL, arg.CaptionEn, arg.CaptionAr, arg.OrderIndex,
		time.Now().UTC())
	if err != nil {
		return model.ProjectImage{}, err
	}
	return q.GetProjectImageByID(ctx, id)
}

// UpdateProjectImageParams is a partial patch: nil fields are left unchanged.
type UpdateProjectImageParams struct {
	URL        *string
	CaptionEn  *string
	CaptionAr  *string
	OrderIndex *int64
}

// UpdateProjectImage applies the patch, or returns sql.ErrNoRows.
func (q *Queries) UpdateProjectImage(ctx context.Context, id string, arg UpdateProjectImageParams) (model.ProjectImage, error) {
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
		return q.GetProjectImageByID(ctx, id)
	}

	args = append(args, id)
	res, err := q.db.ExecContext(ctx,
		`UPDATE project_images SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return model.ProjectImage{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.ProjectImage{}, err
	} else if n == 0 {
		return model.ProjectImage{}, sql.ErrNoRows
	}
	return q.GetProjectImageByID(ctx, id)
}

// DeleteProjectImage removes a single image row.
func (q *Queries) DeleteProjectImage(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM project_images WHERE id = ?`, id)
	return err
}
