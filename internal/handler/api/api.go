// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the public and administrative REST handlers.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/ffj-site/internal/cache"
	"github.com/olegiv/ffj-site/internal/store"
)

// maxBodyBytes caps request bodies; nothing the API accepts is larger.
const maxBodyBytes = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	queries  *store.Queries
	content  *cache.Content
	validate *validator.Validate
	policy   *bluemonday.Policy
}

// NewHandler creates a new API handler. The content cache may be nil, in
// which case every read goes to the database.
func NewHandler(db *sql.DB, content *cache.Content) *Handler {
	return &Handler{
		queries:  store.New(db),
		content:  content,
		validate: newValidate(),
		policy:   bluemonday.UGCPolicy(),
	}
}

// MessageResponse is the error and status envelope used across the API.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// ValidationErrorResponse carries per-field validation failures.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteMessage writes a message envelope with the given status code.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteInvalid writes a 400 response with field errors extracted from a
// validator error.
func WriteInvalid(w http.ResponseWriter, message string, err error) {
	WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Message: message,
		Errors:  fieldErrors(err),
	})
}

// decodeBody decodes a JSON request body into dst. Unknown fields are
// ignored; malformed JSON is a validation failure, not a server error.
func decodeBody(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// notFound reports whether err is the no-rows sentinel.
func notFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// logError records a handler failure; the client only ever sees the generic
// message that accompanies the 500.
func logError(r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "path", r.URL.Path, "method", r.Method)
}

// sanitize runs rich-text content through the HTML policy before storage.
func (h *Handler) sanitize(s string) string {
	return h.policy.Sanitize(s)
}

// sanitizePtr applies sanitize to an optional patch field in place.
func (h *Handler) sanitizePtr(s *string) {
	if s != nil {
		*s = h.policy.Sanitize(*s)
	}
}

// parseTime parses an RFC 3339 timestamp from a request field.
func parseTime(s string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
