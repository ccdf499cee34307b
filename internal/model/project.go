// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Project statuses.
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
)

// Project represents a portfolio project. Name and description are bilingual
// pairs; English is the required primary language.
type Project struct {
	ID            string     `json:"id"`
	NameEn        string     `json:"nameEn"`
	NameAr        string     `json:"nameAr"`
	DescriptionEn string     `json:"descriptionEn"`
	DescriptionAr string     `json:"descriptionAr"`
	ImageURL      string     `json:"imageUrl"`
	DemoURL       string     `json:"demoUrl"`
	Technologies  StringList `json:"technologies"`
	IsFeatured    bool       `json:"isFeatured"`
	Status        string     `json:"status"`
	Progress      int64      `json:"progress"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ProjectImage belongs to exactly one Project and is cascade-deleted with it.
// OrderIndex controls display order, ascending; values need not be contiguous.
type ProjectImage struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	URL        string    `json:"url"`
	CaptionEn  string    `json:"captionEn"`
	CaptionAr  string    `json:"captionAr"`
	OrderIndex int64     `json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
}
