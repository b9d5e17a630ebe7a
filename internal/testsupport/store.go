package testsupport

import (
	"strconv"
	"testing"

	"reelstore/internal/catalog"
	"reelstore/internal/config"
	"reelstore/internal/tmdb"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config, opts ...catalog.Option) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg, opts...)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MovieDetails builds a complete detail payload for tests. The external ids
// of sub-entities derive from the movie id so two fixtures never collide
// unless the test wants them to.
func MovieDetails(tmdbID int64, title string, year int) *tmdb.MovieDetails {
	detail := &tmdb.MovieDetails{
		ID:               tmdbID,
		IMDBID:           "tt" + strconv.FormatInt(1000000+tmdbID, 10),
		Title:            title,
		OriginalTitle:    title,
		OriginalLanguage: "en",
		Overview:         "overview of " + title,
		Status:           "Released",
		ReleaseDate:      strconv.Itoa(year) + "-06-15",
		Runtime:          120,
		Budget:           1_000_000,
		Revenue:          5_000_000,
		Popularity:       42.5,
		VoteAverage:      7.8,
		VoteCount:        1234,
	}
	detail.Genres = []tmdb.Genre{
		{ID: 28, Name: "Action"},
		{ID: 878, Name: "Science Fiction"},
	}
	detail.Keywords.Keywords = []tmdb.Keyword{{ID: tmdbID*10 + 1, Name: "keyword-" + title}}
	detail.ProductionCompanies = []tmdb.Company{{ID: 9996, Name: "Syncopy", OriginCountry: "GB"}}
	detail.ProductionCountries = []tmdb.Country{{ISOCode: "US", Name: "United States of America"}}
	detail.SpokenLanguages = []tmdb.Language{{ISOCode: "en", Name: "English", EnglishName: "English"}}
	detail.Credits.Cast = []tmdb.CastMember{
		{ID: 6193, Name: "Leonardo DiCaprio", Character: "Lead", Order: 0, CreditID: "cast-" + strconv.FormatInt(tmdbID, 10)},
	}
	detail.Credits.Crew = []tmdb.CrewMember{
		{ID: 525, Name: "Christopher Nolan", Department: "Directing", Job: "Director", CreditID: "crew-" + strconv.FormatInt(tmdbID, 10)},
	}
	detail.Videos.Results = []tmdb.Video{
		{ID: "video-" + strconv.FormatInt(tmdbID, 10), Key: "abc", Site: "YouTube", Type: "Trailer", Official: true},
	}
	detail.ReleaseDates.Results = []tmdb.CountryReleases{
		{
			ISOCode: "US",
			ReleaseDates: []tmdb.ReleaseDateEntry{
				{Certification: "PG-13", ReleaseDate: strconv.Itoa(year) + "-06-15T00:00:00.000Z", Type: 3},
				{ReleaseDate: strconv.Itoa(year) + "-10-01T00:00:00.000Z", Type: 4},
			},
		},
	}
	detail.WatchProviders.Results = map[string]tmdb.WatchOffers{
		"US": {Flatrate: []tmdb.WatchProvider{{ProviderID: 8, Name: "Netflix"}}},
	}
	return detail
}
