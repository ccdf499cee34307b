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

const projectColumns = `id, name_en, name_ar, description_en, description_ar, image_url,
	demo_url, technologies, is_featured, status, progress, created_at, updated_at`

func scanProject(row rowScanner) (model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.NameEn, &p.NameAr, &p.DescriptionEn, &p.DescriptionAr,
		&p.ImageURL, &p.DemoURL, &p.Technologies, &p.IsFeatured, &p.Status,
		&p.Progress, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListProjects returns all projects, newest first.
func (q *Queries) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProjectByID returns a single project or sql.ErrNoRows.
func (q *Queries) GetProjectByID(ctx context.Context, id string) (model.Project, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// CreateProjectParams holds the client-settable project fields.
type CreateProjectParams struct {
	NameEn        string
	NameAr        string
	DescriptionEn string
	DescriptionAr string
	ImageURL      string
	DemoURL       string
	Technologies  model.StringList
	IsFeatured    bool
	Status        string
	Progress      int64
}

// CreateProject inserts a project and returns the stored row.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	if arg.Status == "" {
		arg.Status = model.ProjectStatusActive
	}
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO projects (id, name_en, name_ar, description_en, description_ar,
			image_url, demo_url, technologies, is_featured, status, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, arg.NameEn, arg.NameAr, arg.DescriptionEn, arg.DescriptionAr,
		arg.ImageURL, arg.DemoURL, arg.Technologies, arg.IsFeatured, arg.Status,
		arg.Progress, now, now)
	if err != nil {
		return model.Project{}, err
	}
	return q.GetProjectByID(ctx, id)
}

// UpdateProjectParams is a partial patch: nil fields are left unchanged.
type UpdateProjectParams struct {
	NameEn        *string
	NameAr        *string
	DescriptionEn *string
	DescriptionAr *string
	ImageURL      *string
	DemoURL       *string
	Technologies  *model.StringList
	IsFeatured    *bool
	Status        *string
	Progress      *int64
}

// UpdateProject applies the patch and returns the updated row, or
// sql.ErrNoRows when no project has the given id.
func (q *Queries) UpdateProject(ctx context.Context, id string, arg UpdateProjectParams) (model.Project, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	appendSet(&sets, &args, "name_en", arg.NameEn)
	appendSet(&sets, &args, "name_ar", arg.NameAr)
	appendSet(&sets, &args, "description_en", arg.DescriptionEn)
	appendSet(&sets, &args, "description_ar", arg.DescriptionAr)
	appendSet(&sets, &args, "image_url", arg.ImageURL)
	appendSet(&sets, &args, "demo_url", arg.DemoURL)
	if arg.Technologies != nil {
		sets = append(sets, "technologies = ?")
		args = append(args, *arg.Technologies)
	}
	if arg.IsFeatured != nil {
		sets = append(sets, "is_featured = ?")
		args = append(args, *arg.IsFeatured)
	}
	appendSet(&sets, &args, "status", arg.Status)
	if arg.Progress != nil {
		sets = append(sets, "progress = ?")
		args = append(args, *arg.Progress)
	}

	args = append(args, id)
	res, err := q.db.ExecContext(ctx,
		`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return model.Project{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Project{}, err
	} else if n == 0 {
		return model.Project{}, sql.ErrNoRows
	}
	return q.GetProjectByID(ctx, id)
}

// DeleteProject removes a project; its images go with it via cascade.
func (q *Queries) DeleteProject(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}

// appendSet adds a column assignment when the patch value is present.
func appendSet(sets *[]string, args *[]any, column string, v *string) {
	if v == nil {
		return
	}
	*sets = append(*sets, column+" = ?")
	*args = append(*args, *v)
}
