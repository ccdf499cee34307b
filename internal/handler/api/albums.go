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

// CreateAlbumRequest is the request body for creating an album.
type CreateAlbumRequest struct {
	NameEn        string `json:"nameEn" validate:"required"`
	NameAr        string `json:"nameAr"`
	DescriptionEn string `json:"descriptionEn"`
	DescriptionAr string `json:"descriptionAr"`
	CoverImageURL string `json:"coverImageUrl"`
}

// UpdateAlbumRequest is the request body for patching an album.
type UpdateAlbumRequest struct {
	NameEn        *string `json:"nameEn" validate:"omitempty,min=1"`
	NameAr        *string `json:"nameAr"`
	DescriptionEn *string `json:"descriptionEn"`
	DescriptionAr *string `json:"descriptionAr"`
	CoverImageURL *string `json:"coverImageUrl"`
}

// CreatePhotoRequest is the request body for adding a photo to an album. The
// album id comes from the URL, not the body.
type CreatePhotoRequest struct {
	URL        string `json:"url" validate:"required"`
	CaptionEn  string `json:"captionEn"`
	CaptionAr  string `json:"captionAr"`
	OrderIndex int64  `json:"orderIndex"`
}

// UpdatePhotoRequest is the request body for patching a photo.
type UpdatePhotoRequest struct {
	URL        *string `json:"url" validate:"omitempty,min=1"`
	CaptionEn  *string `json:"captionEn"`
	CaptionAr  *string `json:"captionAr"`
	OrderIndex *int64  `json:"orderIndex"`
}

// ListAlbums handles GET /api/albums.
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.queries.ListAlbums(r.Context())
	if err != nil {
		logError(r, "list albums failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch albums")
		return
	}
	WriteJSON(w, http.StatusOK, albums)
}

// GetAlbum handles GET /api/albums/{id}. The response embeds the album's
// photos in display order.
func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var detail model.AlbumWithPhotos
	key := cache.AlbumKey(id)
	if h.content.Get(ctx, key, &detail) {
		WriteJSON(w, http.StatusOK, detail)
		return
	}

	album, err := h.queries.GetAlbumByID(ctx, id)
	if err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Not found")
			return
		}
		logError(r, "get album failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch album")
		return
	}
	photos, err := h.queries.ListPhotosByAlbum(ctx, id)
	if err != nil {
		logError(r, "get album failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch album")
		return
	}

	detail = model.AlbumWithPhotos{Album: album, Photos: photos}
	h.content.Set(ctx, key, detail)
	WriteJSON(w, http.StatusOK, detail)
}

// CreateAlbum handles POST /api/albums.
func (h *Handler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req CreateAlbumRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid album data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid album data", err)
		return
	}

	album, err := h.queries.CreateAlbum(r.Context(), store.CreateAlbumParams{
		NameEn:        req.NameEn,
		NameAr:        req.NameAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		logError(r, "create album failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to create album")
		return
	}
	h.content.InvalidateAlbums(r.Context())
	WriteJSON(w, http.StatusCreated, album)
}

// UpdateAlbum handles PUT /api/albums/{id}.
func (h *Handler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	var req UpdateAlbumRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid album data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid album data", err)
		return
	}

	album, err := h.queries.UpdateAlbum(r.Context(), chi.URLParam(r, "id"), store.UpdateAlbumParams{
		NameEn:        req.NameEn,
		NameAr:        req.NameAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Not found")
			return
		}
		logError(r, "update album failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to update album")
		return
	}
	h.content.InvalidateAlbums(r.Context())
	WriteJSON(w, http.StatusOK, album)
}

// DeleteAlbum handles DELETE /api/albums/{id}. Photos go with it.
func (h *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteAlbum(r.Context(), chi.URLParam(r, "id")); err != nil {
		logError(r, "delete album failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to delete album")
		return
	}
	h.content.InvalidateAlbums(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// CreatePhoto handles POST /api/albums/{id}/photos.
func (h *Handler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	var req CreatePhotoRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid photo data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid photo data", err)
		return
	}

	albumID := chi.URLParam(r, "id")
	if _, err := h.queries.GetAlbumByID(r.Context(), albumID); err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Not found")
			return
		}
		logError(r, "add photo failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to add photo")
		return
	}

	photo, err := h.queries.CreatePhoto(r.Context(), store.CreatePhotoParams{
		AlbumID:    albumID,
		URL:        req.URL,
		CaptionEn:  req.CaptionEn,
		CaptionAr:  req.CaptionAr,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		logError(r, "add photo failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to add photo")
		return
	}
	h.content.InvalidateAlbums(r.Context())
	WriteJSON(w, http.StatusCreated, photo)
}

// UpdatePhoto handles PUT /api/photos/{photoId}.
func (h *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	var req UpdatePhotoRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid photo data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid photo data", err)
		return
	}

	photo, err := h.queries.UpdatePhoto(r.Context(), chi.URLParam(r, "photoId"), store.UpdatePhotoParams{
		URL:        req.URL,
		CaptionEn:  req.CaptionEn,
		CaptionAr:  req.CaptionAr,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		if notFound(err) {
			WriteMessage(w, http.StatusNotFound, "Not found")
			return
		}
		logError(r, "update photo failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to update photo")
		return
	}
	h.content.InvalidateAlbums(r.Context())
	WriteJSON(w, http.StatusOK, photo)
}

// DeletePhoto handles DELETE /api/photos/{photoId}.
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeletePhoto(r.Context(), chi.URLParam(r, "photoId")); err != nil {
		logError(r, "delete photo failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to delete photo")
		return
	}
	h.content.InvalidateAlbums(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
