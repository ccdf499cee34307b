// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ffj-site/internal/store"
)

// CreateProjectImageRequest is the request body for attaching an image to a
// project. The project id comes from the URL, not the body.
type CreateProjectImageRequest struct {
	URL        string `json:"url" validate:"required"`
	CaptionEn  string `json:"captionEn"`
	CaptionAr  string `json:"captionAr"`
	OrderIndex int64  `json:"orderIndex"`
}

// UpdateProjectImageRequest is the request body for patching a project image.
type UpdateProjectImageRequest struct {
	URL        *string `json:"url" validate:"omitempty,min=1"`
	CaptionEn  *string `json:"captionEn"`
	CaptionAr  *string `json:"captionAr"`
	OrderIndex *int64  `json:"orderIndex"`
}

// ListProjectImages handles GET /api/projects/{id}/images.
func (h *Handler) ListProjectImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.queries.ListProjectImages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logError(r, "list project images failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch project images")
		return
	}
	WriteJSON(w, http.StatusOK, images)
}

// CreateProjectImage handles POST /api/projects/{id}/images.
func (h *Handler) CreateProjectImage(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectImageRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid project image data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid project image data", err)
		return
	}

	projectID := chi.URLParam(r, "id")
	if _, err := h.queries.GetProjectByID(r.Context(), projectID); err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Project not found")
			return
		}
		logError(r, "add project image failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to add project image")
		return
	}

	image, err := h.queries.CreateProjectImage(r.Context(), store.CreateProjectImageParams{
		ProjectID:  projectID,
		URL:        req.URL,
		CaptionEn:  req.CaptionEn,
		CaptionAr:  req.CaptionAr,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		logError(r, "add project image failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to add project image")
		return
	}
	h.content.InvalidateProjects(r.Context())
	WriteJSON(w, http.StatusCreated, image)
}

// UpdateProjectImage handles PUT /api/project-images/{imageId}.
func (h *Handler) UpdateProjectImage(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectImageRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid project image data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid project image data", err)
		return
	}

	image, err := h.queries.UpdateProjectImage(r.Context(), chi.URLParam(r, "imageId"), store.UpdateProjectImageParams{
		URL:        req.URL,
		CaptionEn:  req.CaptionEn,
		CaptionAr:  req.CaptionAr,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Project image not found")
			return
		}
		logError(r, "update project image failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to update project image")
		return
	}
	h.content.InvalidateProjects(r.Context())
	WriteJSON(w, http.StatusOK, image)
}

// DeleteProjectImage handles DELETE /api/project-images/{imageId}.
func (h *Handler) DeleteProjectImage(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteProjectImage(r.Context(), chi.URLParam(r, "imageId")); err != nil {
		logError(r, "delete project image failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to delete project image")
		return
	}
	h.content.InvalidateProjects(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
