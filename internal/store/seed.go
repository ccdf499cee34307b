package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// staticPageSlugs are the informational pages the front end links to.
var staticPageSlugs = []struct {
	slug    string
	titleEn string
	titleAr string
}{
	{"about", "About", "من نحن"},
	{"programs", "Programs", "البرامج"},
	{"guest-house", "Guest House", "بيت الضيافة"},
	{"education-fund", "Education Fund", "صندوق التعليم"},
}

// Seed creates the static pages when seeding is enabled. Existing pages are
// never touched.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	if !doSeed {
		return nil
	}

	queries := New(db)
	for _, p := range staticPageSlugs {
		_, err := queries.GetPageBySlug(ctx, p.slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking page %q: %w", p.slug, err)
		}

		if _, err := queries.CreatePage(ctx, CreatePageParams{
			Slug:    p.slug,
			TitleEn: p.titleEn,
			TitleAr: p.titleAr,
		}); err != nil {
			return fmt.Errorf("seeding page %q: %w", p.slug, err)
		}
		slog.Info("seeded static page", "slug", p.slug)
	}

	return nil
}
