// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// News statuses.
const (
	NewsStatusDraft     = "draft"
	NewsStatusPublished = "published"
)

// News represents a news article. The slug is a unique human-readable
// identifier distinct from the internal id.
type News struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	TitleEn     string     `json:"titleEn"`
	TitleAr     string     `json:"titleAr"`
	SummaryEn   string     `json:"summaryEn"`
	SummaryAr   string     `json:"summaryAr"`
	ContentEn   string     `json:"contentEn"`
	ContentAr   string     `json:"contentAr"`
	Images      StringList `json:"images"`
	Tags        StringList `json:"tags"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsPublished returns true if the article is published.
func (n *News) IsPublished() bool {
	return n.Status == NewsStatusPublished
}
