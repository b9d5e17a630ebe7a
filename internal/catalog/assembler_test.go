package catalog_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"reelstore/internal/catalog"
	"reelstore/internal/testsupport"
	"reelstore/internal/tmdb"
)

func errorsIsNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNotFound)
}

func TestSaveMoviePersistsFullAggregate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	detail := testsupport.MovieDetails(27205, "Inception", 2010)
	detail.BelongsToCollection = &tmdb.Collection{ID: 9001, Name: "Inception Collection"}

	movie, err := store.SaveMovie(ctx, detail)
	if err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}
	if movie.TMDBID != 27205 || movie.Title != "Inception" {
		t.Fatalf("unexpected movie: %#v", movie)
	}
	if movie.ReleaseDate != "2010-06-15" {
		t.Fatalf("unexpected release date: %q", movie.ReleaseDate)
	}
	if movie.CollectionID == 0 {
		t.Fatal("expected collection to be attached")
	}

	genres, err := store.GenreNames(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GenreNames failed: %v", err)
	}
	if len(genres) != 2 || genres[0] != "Action" || genres[1] != "Science Fiction" {
		t.Fatalf("unexpected genres: %v", genres)
	}
}

func TestSaveMovieIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first, err := store.SaveMovie(ctx, testsupport.MovieDetails(603, "The Matrix", 1999))
	if err != nil {
		t.Fatalf("first SaveMovie failed: %v", err)
	}

	// A second payload for the same external id must not create a second
	// row, even with different scalar fields.
	altered := testsupport.MovieDetails(603, "The Matrix Reloaded Title", 2003)
	second, err := store.SaveMovie(ctx, altered)
	if err != nil {
		t.Fatalf("second SaveMovie failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same local id, got %d and %d", first.ID, second.ID)
	}
	if second.Title != "The Matrix" {
		t.Fatalf("expected original row returned unchanged, got %q", second.Title)
	}

	count, err := store.CountMovies(ctx)
	if err != nil {
		t.Fatalf("CountMovies failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 movie, got %d", count)
	}
}

func TestSaveMovieDefaultsMissingFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	detail := &tmdb.MovieDetails{ID: 777, Title: "Bare Bones"}
	movie, err := store.SaveMovie(ctx, detail)
	if err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}
	if movie.Budget != 0 || movie.Revenue != 0 || movie.Popularity != 0 ||
		movie.VoteAverage != 0 || movie.VoteCount != 0 {
		t.Fatalf("expected zero numeric defaults: %#v", movie)
	}
	if movie.Adult {
		t.Fatal("expected adult flag to default to false")
	}
	if movie.ReleaseDate != "" {
		t.Fatalf("expected empty release date, got %q", movie.ReleaseDate)
	}
}

func TestSaveMovieCapsCredits(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	detail := testsupport.MovieDetails(500, "Crowded", 2015)
	detail.Credits.Cast = nil
	detail.Credits.Crew = nil
	for i := 0; i < 45; i++ {
		detail.Credits.Cast = append(detail.Credits.Cast, tmdb.CastMember{
			ID:        int64(10_000 + i),
			Name:      "Actor " + strconv.Itoa(i),
			Character: "Role " + strconv.Itoa(i),
			Order:     i,
		})
		detail.Credits.Crew = append(detail.Credits.Crew, tmdb.CrewMember{
			ID:         int64(20_000 + i),
			Name:       "Crew " + strconv.Itoa(i),
			Department: "Production",
			Job:        "Job " + strconv.Itoa(i),
		})
	}

	movie, err := store.SaveMovie(ctx, detail)
	if err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}

	if got := countRows(t, store, "movie_cast", movie.ID); got != 30 {
		t.Fatalf("expected 30 cast credits, got %d", got)
	}
	if got := countRows(t, store, "movie_crew", movie.ID); got != 30 {
		t.Fatalf("expected 30 crew credits, got %d", got)
	}
}

func TestSaveMovieHonorsCreditLimitOption(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg, catalog.WithCreditLimit(2))
	ctx := context.Background()

	detail := testsupport.MovieDetails(510, "Trimmed", 2016)
	detail.Credits.Cast = nil
	for i := 0; i < 6; i++ {
		detail.Credits.Cast = append(detail.Credits.Cast, tmdb.CastMember{
			ID:    int64(30_000 + i),
			Name:  "Actor " + strconv.Itoa(i),
			Order: i,
		})
	}

	movie, err := store.SaveMovie(ctx, detail)
	if err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}
	if got := countRows(t, store, "movie_cast", movie.ID); got != 2 {
		t.Fatalf("expected 2 cast credits under the lowered limit, got %d", got)
	}
}

func TestSaveMovieStoresEveryReleaseDateEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	detail := testsupport.MovieDetails(501, "Staggered", 2018)
	detail.ReleaseDates.Results = []tmdb.CountryReleases{
		{ISOCode: "US", ReleaseDates: []tmdb.ReleaseDateEntry{
			{Certification: "R", ReleaseDate: "2018-03-01T00:00:00.000Z", Type: 3},
			{ReleaseDate: "2018-06-01T00:00:00.000Z", Type: 4},
		}},
		{ISOCode: "FR", ReleaseDates: []tmdb.ReleaseDateEntry{
			{ReleaseDate: "2018-03-07T00:00:00.000Z", Type: 3},
		}},
	}

	movie, err := store.SaveMovie(ctx, detail)
	if err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}
	if got := countRows(t, store, "movie_release_dates", movie.ID); got != 3 {
		t.Fatalf("expected 3 release date rows, got %d", got)
	}
}

func TestSaveMovieRollsBackOnFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.SaveMovie(ctx, testsupport.MovieDetails(601, "Existing", 2000)); err != nil {
		t.Fatalf("seed SaveMovie failed: %v", err)
	}

	// Duplicate an existing video id so the video insert, one of the last
	// assembly steps, violates its UNIQUE constraint.
	broken := testsupport.MovieDetails(602, "Doomed", 2001)
	broken.Videos.Results = []tmdb.Video{
		{ID: "video-601", Key: "dup", Site: "YouTube", Type: "Trailer"},
	}

	if _, err := store.SaveMovie(ctx, broken); err == nil {
		t.Fatal("expected SaveMovie to fail on duplicate video id")
	}

	// Nothing of the failed aggregate may remain.
	if _, err := store.MovieByTMDBID(ctx, 602); !errorsIsNotFound(err) {
		t.Fatalf("expected movie 602 absent, got %v", err)
	}
	count, err := store.CountMovies(ctx)
	if err != nil {
		t.Fatalf("CountMovies failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the seeded movie, got %d", count)
	}
}

func TestDeleteMovieCascades(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	movie, err := store.SaveMovie(ctx, testsupport.MovieDetails(700, "Ephemeral", 2012))
	if err != nil {
		t.Fatalf("SaveMovie failed: %v", err)
	}
	if err := store.DeleteMovie(ctx, 700); err != nil {
		t.Fatalf("DeleteMovie failed: %v", err)
	}

	for _, table := range []string{"movie_cast", "movie_crew", "videos", "movie_release_dates", "movie_genres"} {
		if got := countRows(t, store, table, movie.ID); got != 0 {
			t.Fatalf("expected %s rows removed by cascade, got %d", table, got)
		}
	}
	// The shared person resolved for the credits survives.
	people := countAll(t, store, "people")
	if people == 0 {
		t.Fatal("expected shared people rows to survive movie deletion")
	}
}

func countRows(t *testing.T, store *catalog.Store, table string, movieID int64) int {
	t.Helper()
	var count int
	err := store.DB().QueryRowContext(context.Background(),
		"SELECT COUNT(1) FROM "+table+" WHERE movie_id = ?", movieID).Scan(&count)
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func countAll(t *testing.T, store *catalog.Store, table string) int {
	t.Helper()
	var count int
	err := store.DB().QueryRowContext(context.Background(),
		"SELECT COUNT(1) FROM "+table).Scan(&count)
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}
