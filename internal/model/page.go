// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Page statuses. Pages default to published on creation.
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
)

// Page represents a static informational page (about, programs, guest-house,
// education-fund) addressed by its unique slug.
type Page struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	TitleEn   string    `json:"titleEn"`
	TitleAr   string    `json:"titleAr"`
	ContentEn string    `json:"contentEn"`
	ContentAr string    `json:"contentAr"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
