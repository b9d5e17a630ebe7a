package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Movie is one catalog movie row. ReleaseDate holds a YYYY-MM-DD date or the
// empty string when the provider supplied none.
type Movie struct {
	ID               int64
	TMDBID           int64
	IMDBID           string
	Title            string
	OriginalTitle    string
	OriginalLanguage string
	Overview         string
	Tagline          string
	Status           string
	ReleaseDate      string
	Runtime          int64
	Budget           int64
	Revenue          int64
	Popularity       float64
	VoteAverage      float64
	VoteCount        int64
	PosterPath       string
	BackdropPath     string
	Homepage         string
	Adult            bool
	CollectionID     int64 // 0 when the movie belongs to no collection
}

// User owns imported ratings; created lazily by the import driver.
type User struct {
	ID          int64
	Username    string
	DisplayName string
}

// Rating is one stored user rating on the 1-10 scale.
type Rating struct {
	ID      int64
	UserID  int64
	MovieID int64
	Value   int64
}

const movieColumns = `id, tmdb_id, imdb_id, title, original_title, original_language,
	overview, tagline, status, release_date, runtime, budget, revenue,
	popularity, vote_average, vote_count, poster_path, backdrop_path,
	homepage, adult, collection_id`

func scanMovie(row *sql.Row) (*Movie, error) {
	var m Movie
	var imdbID, originalTitle, originalLanguage, overview, tagline sql.NullString
	var status, releaseDate, posterPath, backdropPath, homepage sql.NullString
	var collectionID sql.NullInt64

	err := row.Scan(
		&m.ID, &m.TMDBID, &imdbID, &m.Title, &originalTitle, &originalLanguage,
		&overview, &tagline, &status, &releaseDate, &m.Runtime, &m.Budget, &m.Revenue,
		&m.Popularity, &m.VoteAverage, &m.VoteCount, &posterPath, &backdropPath,
		&homepage, &m.Adult, &collectionID,
	)
	if err != nil {
		return nil, err
	}

	m.IMDBID = imdbID.String
	m.OriginalTitle = originalTitle.String
	m.OriginalLanguage = originalLanguage.String
	m.Overview = overview.String
	m.Tagline = tagline.String
	m.Status = status.String
	m.ReleaseDate = releaseDate.String
	m.PosterPath = posterPath.String
	m.BackdropPath = backdropPath.String
	m.Homepage = homepage.String
	m.CollectionID = collectionID.Int64
	return &m, nil
}

// MovieByTMDBID returns the movie for the given external id, or ErrNotFound.
func (s *Store) MovieByTMDBID(ctx context.Context, tmdbID int64) (*Movie, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE tmdb_id = ?`, tmdbID)
	movie, err := scanMovie(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("movie tmdb_id=%d: %w", tmdbID, ErrNotFound)
		}
		return nil, fmt.Errorf("query movie by tmdb id: %w", err)
	}
	return movie, nil
}

// HasMovie reports whether a movie with the given external id exists.
func (s *Store) HasMovie(ctx context.Context, tmdbID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE tmdb_id = ?`, tmdbID).Scan(&one)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("check movie existence: %w", err)
	}
	return true, nil
}

// CountMovies returns the number of movies in the catalog.
func (s *Store) CountMovies(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return count, nil
}

// GenreNames returns the genre names attached to a movie, sorted.
func (s *Store) GenreNames(ctx context.Context, movieID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.name FROM genres g
		 JOIN movie_genres mg ON mg.genre_id = g.id
		 WHERE mg.movie_id = ? ORDER BY g.name`, movieID)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}
	return names, nil
}

// DeleteMovie removes a movie and, through cascading deletes, its credits,
// videos, release dates, associations, and ratings. Shared reference
// entities are left in place.
func (s *Store) DeleteMovie(ctx context.Context, tmdbID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE tmdb_id = ?`, tmdbID)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete movie rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("movie tmdb_id=%d: %w", tmdbID, ErrNotFound)
	}
	return nil
}

// Summary formats a one-line description of the movie for log and CLI output.
func (m *Movie) Summary() string {
	var b strings.Builder
	b.WriteString(m.Title)
	if len(m.ReleaseDate) >= 4 {
		b.WriteString(" (")
		b.WriteString(m.ReleaseDate[:4])
		b.WriteString(")")
	}
	return b.String()
}
