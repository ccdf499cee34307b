// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Album represents a photo album.
type Album struct {
	ID            string    `json:"id"`
	NameEn        string    `json:"nameEn"`
	NameAr        string    `json:"nameAr"`
	DescriptionEn string    `json:"descriptionEn"`
	DescriptionAr string    `json:"descriptionAr"`
	CoverImageURL string    `json:"coverImageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Photo belongs to exactly one Album and is cascade-deleted with it.
type Photo struct {
	ID         string    `json:"id"`
	AlbumID    string    `json:"albumId"`
	URL        string    `json:"url"`
	CaptionEn  string    `json:"captionEn"`
	CaptionAr  string    `json:"captionAr"`
	OrderIndex int64     `json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AlbumWithPhotos is the album detail shape: the album plus its photos in
// display order.
type AlbumWithPhotos struct {
	Album
	Photos []Photo `json:"photos"`
}
