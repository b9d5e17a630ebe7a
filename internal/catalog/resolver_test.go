package catalog_test

import (
	"context"
	"testing"

	"reelstore/internal/testsupport"
	"reelstore/internal/tmdb"
)

func TestSharedEntitiesResolveToOneRow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	// Both fixtures carry the same genres, company, country, language, and
	// people. Saving two movies must reuse those rows, not duplicate them.
	if _, err := store.SaveMovie(ctx, testsupport.MovieDetails(100, "First", 2001)); err != nil {
		t.Fatalf("first SaveMovie failed: %v", err)
	}
	if _, err := store.SaveMovie(ctx, testsupport.MovieDetails(101, "Second", 2002)); err != nil {
		t.Fatalf("second SaveMovie failed: %v", err)
	}

	for table, want := range map[string]int{
		"genres":               2,
		"production_companies": 1,
		"production_countries": 1,
		"spoken_languages":     1,
		"people":               2,
		"providers":            1,
	} {
		if got := countAll(t, store, table); got != want {
			t.Fatalf("expected %d rows in %s, got %d", want, table, got)
		}
	}
}

func TestLanguageEnglishNameBackfill(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	detail := testsupport.MovieDetails(200, "Foreign", 2019)
	detail.SpokenLanguages = []tmdb.Language{{ISOCode: "fr", Name: "Français"}}
	if _, err := store.SaveMovie(ctx, detail); err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}

	var englishName string
	err := store.DB().QueryRowContext(ctx,
		`SELECT english_name FROM spoken_languages WHERE iso_code = 'fr'`).Scan(&englishName)
	if err != nil {
		t.Fatalf("query spoken language: %v", err)
	}
	if englishName != "French" {
		t.Fatalf("expected backfilled english name, got %q", englishName)
	}
}
