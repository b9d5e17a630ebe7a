package catalog_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"reelstore/internal/catalog"
	"reelstore/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	count, err := store.CountMovies(context.Background())
	if err != nil {
		t.Fatalf("CountMovies failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty catalog, got %d movies", count)
	}
	if store.Path() != cfg.DatabasePath() {
		t.Fatalf("expected store path %s, got %s", cfg.DatabasePath(), store.Path())
	}
}

func TestWithLoggerEmitsAssemblyProgress(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := testsupport.MustOpenStore(t, cfg, catalog.WithLogger(logger))

	if _, err := store.SaveMovie(context.Background(), testsupport.MovieDetails(42, "Logged", 2015)); err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}

	logged := buf.String()
	for _, want := range []string{"saving movie", "movie saved", "tmdb_id=42"} {
		if !strings.Contains(logged, want) {
			t.Fatalf("expected %q in log output, got:\n%s", want, logged)
		}
	}
}

func TestHasMovie(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	ok, err := store.HasMovie(ctx, 42)
	if err != nil {
		t.Fatalf("HasMovie failed: %v", err)
	}
	if ok {
		t.Fatal("expected empty catalog to report no movie")
	}

	if _, err := store.SaveMovie(ctx, testsupport.MovieDetails(42, "Present", 2014)); err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}
	ok, err = store.HasMovie(ctx, 42)
	if err != nil {
		t.Fatalf("HasMovie failed: %v", err)
	}
	if !ok {
		t.Fatal("expected saved movie to be reported present")
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := store.SaveMovie(ctx, testsupport.MovieDetails(100, "First", 2001)); err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	movie, err := reopened.MovieByTMDBID(ctx, 100)
	if err != nil {
		t.Fatalf("MovieByTMDBID after reopen: %v", err)
	}
	if movie.Title != "First" {
		t.Fatalf("unexpected movie after reopen: %#v", movie)
	}
}

func TestMovieByTMDBIDNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.MovieByTMDBID(context.Background(), 424242)
	if err == nil {
		t.Fatal("expected error for unknown movie")
	}
	if !errorsIsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
