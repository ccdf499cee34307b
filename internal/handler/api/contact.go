// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/ffj-site/internal/store"
)

// CreateContactMessageRequest is the public contact-form body. All fields
// are required.
type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// CreateContactMessage handles POST /api/contact.
func (h *Handler) CreateContactMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateContactMessageRequest
	if err := decodeBody(r, &req); err != nil {
		WriteInvalid(w, "Invalid contact data", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteInvalid(w, "Invalid contact data", err)
		return
	}

	msg, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		logError(r, "send contact message failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to send message")
		return
	}
	WriteJSON(w, http.StatusCreated, MessageResponse{
		Message: "Message sent successfully",
		ID:      msg.ID,
	})
}

// ListContactMessages handles GET /api/contact-messages, newest first.
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.queries.ListContactMessages(r.Context())
	if err != nil {
		logError(r, "list contact messages failed", err)
		WriteMessage(w, http.StatusInternalServerError, "Failed to fetch contact messages")
		return
	}
	WriteJSON(w, http.StatusOK, messages)
}
