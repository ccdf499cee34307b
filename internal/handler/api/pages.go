// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ffj-site/internal/cache"
	"github.com/olegiv/ffj-site/internal/model"
	"github.com/olegiv/ffj-site/internal/store"
	"github.com/olegiv/ffj-site/internal/util"
)

// CreatePageRequest is the request body for creating a page. An empty slug
// is derived from the English title.
type CreatePageRequest struct {
	Slug      string `json:"slug"`
	TitleEn   string `json:"titleEn" validate:"required"`
	TitleAr   string `json:"titleAr"`
	ContentEn string `json:"contentEn"`
	ContentAr string `json:"contentAr"`
	Status    string `json:"status" validate:"omitempty,oneof=draft published"`
}

// UpdatePageRequest is the request body for patching a page.
type UpdatePageRequest struct {
	Slug      *string `json:"slug" validate:"omitempty,min=1"`
	TitleEn   *string `json:"titleEn" validate:"omitempty,min=1"`
	TitleAr   *string `json:"titleAr"`
	ContentEn *string `json:"contentEn"`
	ContentAr *string `json:"contentAr"`
	Status    *string `json:"status" validate:"omitempty,oneof=draft published"`
}

// ListPages handles GET /api/pages.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListPages(r.Context())
	if err != nil {
		logError(r, "list pages failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch pages")
		return
	}
	WriteJSON(w, http.StatusOK, pages)
}

// GetPage handles GET /api/pages/{slug}.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	var page model.Page
	key := cache.PageKey(slug)
	if h.content.Get(ctx, key, &page) {
		WriteJSON(w, http.StatusOK, page)
		return
	}

	page, err := h.queries.GetPageBySlug(ctx, slug)
	if err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Not found")
			return
		}
		logError(r, "get page failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch page")
		return
	}
	h.content.Set(ctx, key, page)
	WriteJSON(w, http.StatusOK, page)
}

// CreatePage handles POST /api/pages.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req CreatePageRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid page data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid page data", err)
		return
	}

	slug := req.Slug
	if slug == "" {
		var err error
		if slug, err = h.uniquePageSlug(r, req.TitleEn); err != nil {
			WriteMessage(w, http.StatusInternalServerError, "Failed to create page")
			return
		}
	}

	page, err := h.queries.CreatePage(r.Context(), store.CreatePageParams{
		Slug:      slug,
		TitleEn:   req.TitleEn,
		TitleAr:   req.TitleAr,
		ContentEn: h.sanitize(req.ContentEn),
		ContentAr: h.sanitize(req.ContentAr),
		Status:    req.Status,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Message: "Invalid page data",
				Errors:  map[string]string{"slug": "is already in use"},
			})
			return
		}
		logError(r, "create page failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to create page")
		return
	}
	h.content.InvalidatePages(r.Context())
	WriteJSON(w, http.StatusCreated, page)
}

func (h *Handler) uniquePageSlug(r *http.Request, title string) (string, error) {
	base := util.Slugify(title)
	slug := base
	for i := 2; i <= maxSlugAttempts; i++ {
		n, err := h.queries.CountPagesBySlug(r.Context(), slug)
		if err != nil {
			logError(r, "slug lookup failed", err)
			return "", err
		}
		if n == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q", base)
}

// UpdatePage handles PUT /api/pages/{id}.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var req UpdatePageRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid page data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid page data", err)
		return
	}

	h.sanitizePtr(req.ContentEn)
	h.sanitizePtr(req.ContentAr)

	page, err := h.queries.UpdatePage(r.Context(), chi.URLParam(r, "id"), store.UpdatePageParams{
		Slug:      req.Slug,
		TitleEn:   req.TitleEn,
		TitleAr:   req.TitleAr,
		ContentEn: req.ContentEn,
		ContentAr: req.ContentAr,
		Status:    req.Status,
	})
	if err != nil {
		switch {
		case notFound(err):
			WriteMessage(w, http.StatusNotFound, "Not found")
		case store.IsUniqueViolation(err):
			WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Message: "Invalid page data",
				Errors:  map[string]string{"slug": "is already in use"},
			})
		default:
			logError(r, "update page failed", err)
			WriteMessage(w, http.StatusInternalServerError, "Failed to update page")
		}
		return
	}
	h.content.InvalidatePages(r.Context())
	WriteJSON(w, http.StatusOK, page)
}

// DeletePage handles DELETE /api/pages/{id}.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeletePage(r.Context(), chi.URLParam(r, "id")); err != nil {
		logError(r, "delete page failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to delete page")
		return
	}
	h.content.InvalidatePages(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
