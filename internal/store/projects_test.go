// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/olegiv/ffj-site/internal/model"
)

func TestCreateProjectDefaults(t *testing.T) {
	q, ctx := testQueries(t)

	p, err := q.CreateProject(ctx, CreateProjectParams{
		NameEn: "Water well", DescriptionEn: "Village well", ImageURL: "/img/well.jpg",
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.ID == "" {
		t.Error("expected generated id")
	}
	if p.Status != model.ProjectStatusActive {
		t.Errorf("expected default status %q, got %q", model.ProjectStatusActive, p.Status)
	}
	if p.IsFeatured {
		t.Error("expected isFeatured false by default")
	}
	if p.Technologies == nil {
		t.Error("expected empty technologies list, got nil")
	}
}

func TestUpdateProjectPartial(t *testing.T) {
	q, ctx := testQueries(t)

	p, err := q.CreateProject(ctx, CreateProjectParams{
		NameEn: "School", NameAr: "مدرسة", DescriptionEn: "Primary school",
		ImageURL: "/img/school.jpg", Progress: 40,
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	progress := int64(75)
	status := model.ProjectStatusCompleted
	updated, err := q.UpdateProject(ctx, p.ID, UpdateProjectParams{
		Progress: &progress, Status: &status,
	})
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if updated.Progress != 75 || updated.Status != model.ProjectStatusCompleted {
		t.Errorf("patch not applied: progress=%d status=%q", updated.Progress, updated.Status)
	}
	if updated.NameAr != "مدرسة" {
		t.Errorf("untouched field changed: %q", updated.NameAr)
	}
}

func TestUpdateProjectMissing(t *testing.T) {
	q, ctx := testQueries(t)

	name := "Nope"
	_, err := q.UpdateProject(ctx, "missing", UpdateProjectParams{NameEn: &name})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestDeleteProjectCascadesImages(t *testing.T) {
	q, ctx := testQueries(t)

	p, err := q.CreateProject(ctx, CreateProjectParams{
		NameEn: "Clinic", DescriptionEn: "Rural clinic", ImageURL: "/img/clinic.jpg",
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	for i := int64(0); i < 3; i++ {
		if _, err := q.CreateProjectImage(ctx, CreateProjectImageParams{
			ProjectID: p.ID, URL: "/img/clinic-gallery.jpg", OrderIndex: i,
		}); err != nil {
			t.Fatalf("CreateProjectImage: %v", err)
		}
	}

	if err := q.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	images, err := q.ListProjectImages(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListProjectImages: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("expected cascade to remove images, got %d", len(images))
	}
}

func TestListProjectImagesOrder(t *testing.T) {
	q, ctx := testQueries(t)

	p, err := q.CreateProject(ctx, CreateProjectParams{
		NameEn: "Bridge", DescriptionEn: "Footbridge", ImageURL: "/img/bridge.jpg",
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	for _, idx := range []int64{2, 0, 1} {
		if _, err := q.CreateProjectImage(ctx, CreateProjectImageParams{
			ProjectID: p.ID, URL: "/img/bridge-gallery.jpg", OrderIndex: idx,
		}); err != nil {
			t.Fatalf("CreateProjectImage: %v", err)
		}
	}

	images, err := q.ListProjectImages(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListProjectImages: %v", err)
	}
	for i, img := range images {
		if img.OrderIndex != int64(i) {
			t.Errorf("position %d: expected orderIndex %d, got %d", i, i, img.OrderIndex)
		}
	}
}
