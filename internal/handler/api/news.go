// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ffj-site/internal/cache"
	"github.com/olegiv/ffj-site/internal/model"
	"github.com/olegiv/ffj-site/internal/store"
	"github.com/olegiv/ffj-site/internal/util"
)

// maxSlugAttempts bounds the suffix search when deriving a unique slug.
const maxSlugAttempts = 50

// CreateNewsRequest is the request body for creating an article. An empty
// slug is derived from the English title.
type CreateNewsRequest struct {
	Slug        string   `json:"slug"`
	TitleEn     string   `json:"titleEn" validate:"required"`
	TitleAr     string   `json:"titleAr"`
	SummaryEn   string   `json:"summaryEn"`
	SummaryAr   string   `json:"summaryAr"`
	ContentEn   string   `json:"contentEn"`
	ContentAr   string   `json:"contentAr"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft published"`
	PublishedAt string   `json:"publishedAt"`
}

// UpdateNewsRequest is the request body for patching an article. A present
// but empty publishedAt clears the publication date.
type UpdateNewsRequest struct {
	Slug        *string   `json:"slug" validate:"omitempty,min=1"`
	TitleEn     *string   `json:"titleEn" validate:"omitempty,min=1"`
	TitleAr     *string   `json:"titleAr"`
	SummaryEn   *string   `json:"summaryEn"`
	SummaryAr   *string   `json:"summaryAr"`
	ContentEn   *string   `json:"contentEn"`
	ContentAr   *string   `json:"contentAr"`
	Images      *[]string `json:"images"`
	Tags        *[]string `json:"tags"`
	Category    *string   `json:"category"`
	Status      *string   `json:"status" validate:"omitempty,oneof=draft published"`
	PublishedAt *string   `json:"publishedAt"`
}

// newsFilterFromQuery builds the listing filter from URL query parameters.
// Unparsable numeric values are treated as absent.
func newsFilterFromQuery(r *http.Request) store.NewsFilter {
	q := r.URL.Query()
	f := store.NewsFilter{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}
	if year, err := strconv.Atoi(q.Get("year")); err == nil {
		f.Year = year
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		f.Limit = limit
	}
	if tags := q.Get("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}
	return f
}

// ListNews handles GET /api/news. Filters compose with AND; status defaults
// to published so the public listing never shows drafts unasked.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := newsFilterFromQuery(r)

	var list []model.News
	key := cache.NewsListKey(filter)
	if h.content.Get(ctx, key, &list) {
		WriteJSON(w, http.StatusOK, list)
		return
	}

	list, err := h.queries.ListNews(ctx, filter)
	if err != nil {
		logError(r, "list news failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch news")
		return
	}
	h.content.Set(ctx, key, list)
	WriteJSON(w, http.StatusOK, list)
}

// GetNews handles GET /api/news/{slug}.
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	article, err := h.queries.GetNewsBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Not found")
			return
		}
		logError(r, "get article failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch article")
		return
	}
	WriteJSON(w, http.StatusOK, article)
}

// CreateNews handles POST /api/news.
func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req CreateNewsRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid news data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid news data", err)
		return
	}

	params := store.CreateNewsParams{
		Slug:      req.Slug,
		TitleEn:   req.TitleEn,
		TitleAr:   req.TitleAr,
		SummaryEn: req.SummaryEn,
		SummaryAr: req.SummaryAr,
		ContentEn: h.sanitize(req.ContentEn),
		ContentAr: h.sanitize(req.ContentAr),
		Images:    model.StringList(req.Images),
		Tags:      model.StringList(req.Tags),
		Category:  req.Category,
		Status:    req.Status,
	}
	if req.PublishedAt != "" {
		t, err := parseTime(req.PublishedAt)
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Message: "Invalid news data",
				Errors:  map[string]string{"publishedAt": "must be an RFC 3339 timestamp"},
			})
			return
		}
		params.PublishedAt = t
	}

	ctx := r.Context()
	if params.Slug == "" {
		slug, err := h.uniqueNewsSlug(r, req.TitleEn)
		if err != nil {
			WriteMessage(w, http.StatusInternalServerError, "Failed to create article")
			return
		}
		params.Slug = slug
	}

	article, err := h.queries.CreateNews(ctx, params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Message: "Invalid news data",
				Errors:  map[string]string{"slug": "is already in use"},
			})
			return
		}
		logError(r, "create article failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to create article")
		return
	}
	h.content.InvalidateNews(ctx)
	WriteJSON(w, http.StatusCreated, article)
}

// uniqueNewsSlug derives a slug from the title and appends a numeric suffix
// until it does not collide with an existing article.
func (h *Handler) uniqueNewsSlug(r *http.Request, title string) (string, error) {
	base := util.Slugify(title)
	slug := base
	for i := 2; i <= maxSlugAttempts; i++ {
		n, err := h.queries.CountNewsBySlug(r.Context(), slug)
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

// UpdateNews handles PUT /api/news/{id}.
func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	var req UpdateNewsRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid news data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid news data", err)
		return
	}

	h.sanitizePtr(req.ContentEn)
	h.sanitizePtr(req.ContentAr)

	params := store.UpdateNewsParams{
		Slug:      req.Slug,
		TitleEn:   req.TitleEn,
		TitleAr:   req.TitleAr,
		SummaryEn: req.SummaryEn,
		SummaryAr: req.SummaryAr,
		ContentEn: req.ContentEn,
		ContentAr: req.ContentAr,
		Category:  req.Category,
		Status:    req.Status,
	}
	if req.Images != nil {
		images := model.StringList(*req.Images)
		params.Images = &images
	}
	if req.Tags != nil {
		tags := model.StringList(*req.Tags)
		params.Tags = &tags
	}
	if req.PublishedAt != nil {
		if *req.PublishedAt == "" {
			params.ClearPublishedAt = true
		} else {
			t, err := parseTime(*req.PublishedAt)
			if err != nil {
				WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
					Message: "Invalid news data",
					Errors:  map[string]string{"publishedAt": "must be an RFC 3339 timestamp"},
				})
				return
			}
			params.PublishedAt = t
		}
	}

	article, err := h.queries.UpdateNews(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		switch {
		case notFound(err):
			WriteMessage(w, http.StatusNotFound, "Not found")
		case store.IsUniqueViolation(err):
			WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Message: "Invalid news data",
				Errors:  map[string]string{"slug": "is already in use"},
			})
		default:
			logError(r, "update article failed", err)
			WriteMessage(w, http.StatusInternalServerError, "Failed to update article")
		}
		return
	}
	h.content.InvalidateNews(r.Context())
	WriteJSON(w, http.StatusOK, article)
}

// DeleteNews handles DELETE /api/news/{id}.
func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteNews(r.Context(), chi.URLParam(r, "id")); err != nil {
		logError(r, "delete article failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to delete article")
		return
	}
	h.content.InvalidateNews(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
