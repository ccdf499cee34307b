// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ffj-site/internal/cache"
	"github.com/olegiv/ffj-site/internal/model"
	"github.com/olegiv/ffj-site/internal/store"
)

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	NameEn        string   `json:"nameEn" validate:"required"`
	NameAr        string   `json:"nameAr"`
	DescriptionEn string   `json:"descriptionEn" validate:"required"`
	DescriptionAr string   `json:"descriptionAr"`
	ImageURL      string   `json:"imageUrl" validate:"required"`
	DemoURL       string   `json:"demoUrl"`
	Technologies  []string `json:"technologies"`
	IsFeatured    bool     `json:"isFeatured"`
	Status        string   `json:"status" validate:"omitempty,oneof=active completed"`
	Progress      *int64   `json:"progress" validate:"omitempty,min=0,max=100"`
}

// UpdateProjectRequest is the request body for patching a project. Absent
// fields keep their stored values.
type UpdateProjectRequest struct {
	NameEn        *string   `json:"nameEn" validate:"omitempty,min=1"`
	NameAr        *string   `json:"nameAr"`
	DescriptionEn *string   `json:"descriptionEn" validate:"omitempty,min=1"`
	DescriptionAr *string   `json:"descriptionAr"`
	ImageURL      *string   `json:"imageUrl" validate:"omitempty,min=1"`
	DemoURL       *string   `json:"demoUrl"`
	Technologies  *[]string `json:"technologies"`
	IsFeatured    *bool     `json:"isFeatured"`
	Status        *string   `json:"status" validate:"omitempty,oneof=active completed"`
	Progress      *int64    `json:"progress" validate:"omitempty,min=0,max=100"`
}

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var projects []model.Project
	key := cache.ProjectListKey()
	if h.content.Get(ctx, key, &projects) {
		WriteJSON(w, http.StatusOK, projects)
		return
	}

	projects, err := h.queries.ListProjects(ctx)
	if err != nil {
		logError(r, "list projects failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}
	h.content.Set(ctx, key, projects)
	WriteJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.queries.GetProjectByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Project not found")
			return
		}
		logError(r, "get project failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// CreateProject handles POST /api/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid project data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid project data", err)
		return
	}

	params := store.CreateProjectParams{
		NameEn:        req.NameEn,
		NameAr:        req.NameAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		ImageURL:      req.ImageURL,
		DemoURL:       req.DemoURL,
		Technologies:  model.StringList(req.Technologies),
		IsFeatured:    req.IsFeatured,
		Status:        req.Status,
	}
	if req.Progress != nil {
		params.Progress = *req.Progress
	}

	project, err := h.queries.CreateProject(r.Context(), params)
	if err != nil {
		logError(r, "create project failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to create project")
		return
	}
	h.content.InvalidateProjects(r.Context())
	WriteJSON(w, http.StatusCreated, project)
}

// UpdateProject handles PUT /api/projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid project data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid project data", err)
		return
	}

	params := store.UpdateProjectParams{
		NameEn:        req.NameEn,
		NameAr:        req.NameAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		ImageURL:      req.ImageURL,
		DemoURL:       req.DemoURL,
		IsFeatured:    req.IsFeatured,
		Status:        req.Status,
		Progress:      req.Progress,
	}
	if req.Technologies != nil {
		techs := model.StringList(*req.Technologies)
		params.Technologies = &techs
	}

	project, err := h.queries.UpdateProject(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Project not found")
			return
		}
		logError(r, "update project failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to update project")
		return
	}
	h.content.InvalidateProjects(r.Context())
	WriteJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/{id}. Project images go with it.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		logError(r, "delete project failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	h.content.InvalidateProjects(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
