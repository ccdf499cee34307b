// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"testing"
)

func TestDeleteAlbumCascadesPhotos(t *testing.T) {
	q, ctx := testQueries(t)

	a, err := q.CreateAlbum(ctx, CreateAlbumParams{NameEn: "Graduation 2025"})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	for i := int64(0); i < 2; i++ {
		if _, err := q.CreatePhoto(ctx, CreatePhotoParams{
			AlbumID: a.ID, URL: "/img/grad.jpg", OrderIndex: i,
		}); err != nil {
			t.Fatalf("CreatePhoto: %v", err)
		}
	}

	if err := q.DeleteAlbum(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAlbum: %v", err)
	}

	photos, err := q.ListPhotosByAlbum(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListPhotosByAlbum: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("expected cascade to remove photos, got %d", len(photos))
	}
}

func TestUpdateAlbumEmptyPatch(t *testing.T) {
	q, ctx := testQueries(t)

	a, err := q.CreateAlbum(ctx, CreateAlbumParams{NameEn: "Summer camp", NameAr: "المخيم الصيفي"})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}

	same, err := q.UpdateAlbum(ctx, a.ID, UpdateAlbumParams{})
	if err != nil {
		t.Fatalf("UpdateAlbum: %v", err)
	}
	if same.NameEn != a.NameEn || same.NameAr != a.NameAr {
		t.Errorf("empty patch changed the album: %+v", same)
	}
}

func TestContactMessagesNewestFirst(t *testing.T) {
	q, ctx := testQueries(t)

	for _, subject := range []string{"first", "second"} {
		if _, err := q.CreateContactMessage(ctx, CreateContactMessageParams{
			Name: "Visitor", Email: "visitor@example.org", Subject: subject, Message: "Hello",
		}); err != nil {
			t.Fatalf("CreateContactMessage: %v", err)
		}
	}

	messages, err := q.ListContactMessages(ctx)
	if err != nil {
		t.Fatalf("ListContactMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Subject != "second" {
		t.Errorf("expected newest first, got %q", messages[0].Subject)
	}
}
