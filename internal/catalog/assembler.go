package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"reelstore/internal/tmdb"
)

// SaveMovie persists the complete movie aggregate described by the detail
// payload: the movie row plus its collection, genres, keywords, companies,
// countries, languages, credits, release dates, videos, and watch providers.
// Everything is written in one transaction; a failure at any step rolls the
// whole aggregate back.
//
// If a movie with the same external id already exists it is returned
// unchanged and nothing is written.
func (s *Store) SaveMovie(ctx context.Context, detail *tmdb.MovieDetails) (*Movie, error) {
	if detail == nil || detail.ID == 0 {
		return nil, errors.New("detail payload missing movie id")
	}

	existing, err := s.MovieByTMDBID(ctx, detail.ID)
	if err == nil {
		s.logger.Debug("movie already in catalog", "tmdb_id", detail.ID, "title", existing.Title)
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	s.logger.Info("saving movie", "tmdb_id", detail.ID, "title", detail.Title)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin movie tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	movieID, err := s.assembleMovie(ctx, tx, detail)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit movie: %w", err)
	}

	s.logger.Info("movie saved", "tmdb_id", detail.ID, "title", detail.Title, "movie_id", movieID)
	return s.MovieByTMDBID(ctx, detail.ID)
}

// assembleMovie writes the aggregate in dependency order: every shared
// sub-entity is resolved before the association that references it.
func (s *Store) assembleMovie(ctx context.Context, tx *sql.Tx, detail *tmdb.MovieDetails) (int64, error) {
	var collectionID any
	if detail.BelongsToCollection != nil {
		id, err := s.collectionID(ctx, tx, *detail.BelongsToCollection)
		if err != nil {
			return 0, err
		}
		collectionID = id
	}

	movieID, err := s.insertMovieRow(ctx, tx, detail, collectionID)
	if err != nil {
		return 0, err
	}

	for _, payload := range detail.Genres {
		genreID, err := s.genreID(ctx, tx, payload)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO movie_genres (movie_id, genre_id) VALUES (?, ?)`,
			movieID, genreID); err != nil {
			return 0, fmt.Errorf("attach genre: %w", err)
		}
	}

	for _, payload := range detail.Keywords.Keywords {
		keywordID, err := s.keywordID(ctx, tx, payload)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO movie_keywords (movie_id, keyword_id) VALUES (?, ?)`,
			movieID, keywordID); err != nil {
			return 0, fmt.Errorf("attach keyword: %w", err)
		}
	}

	for _, payload := range detail.ProductionCompanies {
		companyID, err := s.companyID(ctx, tx, payload)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO movie_companies (movie_id, company_id) VALUES (?, ?)`,
			movieID, companyID); err != nil {
			return 0, fmt.Errorf("attach company: %w", err)
		}
	}

	for _, payload := range detail.ProductionCountries {
		code, err := s.countryCode(ctx, tx, payload)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO movie_countries (movie_id, iso_code) VALUES (?, ?)`,
			movieID, code); err != nil {
			return 0, fmt.Errorf("attach country: %w", err)
		}
	}

	for _, payload := range detail.SpokenLanguages {
		code, err := s.languageCode(ctx, tx, payload)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO movie_languages (movie_id, iso_code) VALUES (?, ?)`,
			movieID, code); err != nil {
			return 0, fmt.Errorf("attach language: %w", err)
		}
	}

	if err := s.insertCastCredits(ctx, tx, movieID, detail.Credits.Cast); err != nil {
		return 0, err
	}
	if err := s.insertCrewCredits(ctx, tx, movieID, detail.Credits.Crew); err != nil {
		return 0, err
	}
	if err := s.insertReleaseDates(ctx, tx, movieID, detail.ReleaseDates.Results); err != nil {
		return 0, err
	}
	if err := s.insertVideos(ctx, tx, movieID, detail.Videos.Results); err != nil {
		return 0, err
	}
	if err := s.insertWatchProviders(ctx, tx, movieID, detail.WatchProviders.Results); err != nil {
		return 0, err
	}

	return movieID, nil
}

func (s *Store) insertMovieRow(ctx context.Context, tx *sql.Tx, detail *tmdb.MovieDetails, collectionID any) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO movies (
			tmdb_id, imdb_id, title, original_title, original_language,
			overview, tagline, status, release_date, runtime, budget, revenue,
			popularity, vote_average, vote_count, poster_path, backdrop_path,
			homepage, adult, collection_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		detail.ID,
		nullableString(detail.IMDBID),
		detail.Title,
		nullableString(detail.OriginalTitle),
		nullableString(detail.OriginalLanguage),
		nullableString(detail.Overview),
		nullableString(detail.Tagline),
		nullableString(detail.Status),
		nullableString(normalizeDate(detail.ReleaseDate)),
		detail.Runtime,
		detail.Budget,
		detail.Revenue,
		detail.Popularity,
		detail.VoteAverage,
		detail.VoteCount,
		nullableString(detail.PosterPath),
		nullableString(detail.BackdropPath),
		nullableString(detail.Homepage),
		detail.Adult,
		collectionID,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert movie: %w", err)
	}
	movieID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("movie insert id: %w", err)
	}
	return movieID, nil
}

func (s *Store) insertCastCredits(ctx context.Context, tx *sql.Tx, movieID int64, cast []tmdb.CastMember) error {
	if len(cast) > s.creditLimit {
		cast = cast[:s.creditLimit]
	}
	for _, member := range cast {
		personID, err := s.personID(ctx, tx, personPayload{
			ID:          member.ID,
			Name:        member.Name,
			ProfilePath: member.ProfilePath,
			Department:  member.KnownForDepartment,
			Gender:      member.Gender,
		})
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movie_cast (movie_id, person_id, character_name, cast_order, credit_id)
			 VALUES (?, ?, ?, ?, ?)`,
			movieID, personID, nullableString(member.Character), member.Order,
			nullableString(member.CreditID)); err != nil {
			return fmt.Errorf("insert cast credit: %w", err)
		}
	}
	return nil
}

func (s *Store) insertCrewCredits(ctx context.Context, tx *sql.Tx, movieID int64, crew []tmdb.CrewMember) error {
	if len(crew) > s.creditLimit {
		crew = crew[:s.creditLimit]
	}
	for _, member := range crew {
		personID, err := s.personID(ctx, tx, personPayload{
			ID:          member.ID,
			Name:        member.Name,
			ProfilePath: member.ProfilePath,
			Department:  member.KnownForDepartment,
			Gender:      member.Gender,
		})
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movie_crew (movie_id, person_id, department, job, credit_id)
			 VALUES (?, ?, ?, ?, ?)`,
			movieID, personID, nullableString(member.Department),
			nullableString(member.Job), nullableString(member.CreditID)); err != nil {
			return fmt.Errorf("insert crew credit: %w", err)
		}
	}
	return nil
}

func (s *Store) insertReleaseDates(ctx context.Context, tx *sql.Tx, movieID int64, results []tmdb.CountryReleases) error {
	for _, country := range results {
		// A country may publish several entries (theatrical, digital, ...).
		for _, entry := range country.ReleaseDates {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO movie_release_dates
					 (movie_id, country_code, release_date, certification, type)
				 VALUES (?, ?, ?, ?, ?)`,
				movieID, country.ISOCode,
				nullableString(normalizeDate(entry.ReleaseDate)),
				nullableString(entry.Certification), entry.Type); err != nil {
				return fmt.Errorf("insert release date for %s: %w", country.ISOCode, err)
			}
		}
	}
	return nil
}

func (s *Store) insertVideos(ctx context.Context, tx *sql.Tx, movieID int64, videos []tmdb.Video) error {
	for _, video := range videos {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO videos (tmdb_video_id, movie_id, key, name, site, type, size, official)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			video.ID, movieID, nullableString(video.Key), nullableString(video.Name),
			nullableString(video.Site), nullableString(video.Type), video.Size,
			video.Official); err != nil {
			return fmt.Errorf("insert video %q: %w", video.ID, err)
		}
	}
	return nil
}

func (s *Store) insertWatchProviders(ctx context.Context, tx *sql.Tx, movieID int64, results map[string]tmdb.WatchOffers) error {
	for countryCode, offers := range results {
		groups := []struct {
			offerType string
			providers []tmdb.WatchProvider
		}{
			{"flatrate", offers.Flatrate},
			{"rent", offers.Rent},
			{"buy", offers.Buy},
		}
		for _, group := range groups {
			for _, provider := range group.providers {
				providerID, err := s.providerID(ctx, tx, provider)
				if err != nil {
					return err
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT OR IGNORE INTO movie_watch_providers
						 (movie_id, provider_id, country_code, offer_type)
					 VALUES (?, ?, ?, ?)`,
					movieID, providerID, countryCode, group.offerType); err != nil {
					return fmt.Errorf("attach watch provider %q: %w", provider.Name, err)
				}
			}
		}
	}
	return nil
}

// normalizeDate reduces a provider date ("2010-07-15" or RFC 3339 with a
// time component) to YYYY-MM-DD. Anything unparseable becomes the empty
// string, which is stored as NULL rather than failing the assembly.
func normalizeDate(value string) string {
	if len(value) < 10 {
		return ""
	}
	datePart := value[:10]
	if _, err := time.Parse("2006-01-02", datePart); err != nil {
		return ""
	}
	return datePart
}
