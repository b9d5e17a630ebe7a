package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"reelstore/internal/language"
	"reelstore/internal/tmdb"
)

// The resolver implements get-or-create for every shared reference entity,
// keyed by the provider's external id (or ISO code for countries and
// languages). All lookups and inserts run on the caller's open transaction,
// so an id created early in a movie assembly is visible to every later
// statement of the same assembly without a second round trip.
//
// The external-id columns carry UNIQUE constraints at the storage layer. A
// uniqueness violation on insert means another writer created the row between
// our check and our insert; it is converted into a re-read, never an error.
// The current ingestion driver is single-threaded, but the fallback is part
// of the resolver contract, not an optimization.

func resolveRowID(ctx context.Context, tx *sql.Tx, selectQuery string, key any, insert func() error) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, selectQuery, key).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !isNoRows(err) {
		return 0, err
	}

	if insertErr := insert(); insertErr != nil {
		if !isUniqueViolation(insertErr) {
			return 0, insertErr
		}
		// Lost the insert race; the row exists now.
	}

	if err := tx.QueryRowContext(ctx, selectQuery, key).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) genreID(ctx context.Context, tx *sql.Tx, payload tmdb.Genre) (int64, error) {
	id, err := resolveRowID(ctx, tx,
		`SELECT id FROM genres WHERE tmdb_id = ?`, payload.ID,
		func() error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO genres (tmdb_id, name) VALUES (?, ?)`,
				payload.ID, payload.Name)
			return err
		})
	if err != nil {
		return 0, fmt.Errorf("resolve genre %q: %w", payload.Name, err)
	}
	return id, nil
}

func (s *Store) keywordID(ctx context.Context, tx *sql.Tx, payload tmdb.Keyword) (int64, error) {
	id, err := resolveRowID(ctx, tx,
		`SELECT id FROM keywords WHERE tmdb_id = ?`, payload.ID,
		func() error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO keywords (tmdb_id, name) VALUES (?, ?)`,
				payload.ID, payload.Name)
			return err
		})
	if err != nil {
		return 0, fmt.Errorf("resolve keyword %q: %w", payload.Name, err)
	}
	return id, nil
}

// personPayload carries the person-identifying fields shared by cast and crew
// credit entries.
type personPayload struct {
	ID          int64
	Name        string
	ProfilePath string
	Department  string
	Gender      int
}

func (s *Store) personID(ctx context.Context, tx *sql.Tx, payload personPayload) (int64, error) {
	id, err := resolveRowID(ctx, tx,
		`SELECT id FROM people WHERE tmdb_id = ?`, payload.ID,
		func() error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO people (tmdb_id, name, profile_path, department, gender)
				 VALUES (?, ?, ?, ?, ?)`,
				payload.ID, payload.Name, nullableString(payload.ProfilePath),
				nullableString(payload.Department), payload.Gender)
			return err
		})
	if err != nil {
		return 0, fmt.Errorf("resolve person %q: %w", payload.Name, err)
	}
	return id, nil
}

func (s *Store) companyID(ctx context.Context, tx *sql.Tx, payload tmdb.Company) (int64, error) {
	id, err := resolveRowID(ctx, tx,
		`SELECT id FROM production_companies WHERE tmdb_id = ?`, payload.ID,
		func() error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO production_companies (tmdb_id, name, logo_path, origin_country)
				 VALUES (?, ?, ?, ?)`,
				payload.ID, payload.Name, nullableString(payload.LogoPath),
				nullableString(payload.OriginCountry))
			return err
		})
	if err != nil {
		return 0, fmt.Errorf("resolve company %q: %w", payload.Name, err)
	}
	return id, nil
}

func (s *Store) collectionID(ctx context.Context, tx *sql.Tx, payload tmdb.Collection) (int64, error) {
	id, err := resolveRowID(ctx, tx,
		`SELECT id FROM collections WHERE tmdb_id = ?`, payload.ID,
		func() error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO collections (tmdb_id, name, overview, poster_path, backdrop_path)
				 VALUES (?, ?, ?, ?, ?)`,
				payload.ID, payload.Name, nullableString(payload.Overview),
				nullableString(payload.PosterPath), nullableString(payload.BackdropPath))
			return err
		})
	if err != nil {
		return 0, fmt.Errorf("resolve collection %q: %w", payload.Name, err)
	}
	return id, nil
}

func (s *Store) providerID(ctx context.Context, tx *sql.Tx, payload tmdb.WatchProvider) (int64, error) {
	id, err := resolveRowID(ctx, tx,
		`SELECT id FROM providers WHERE tmdb_id = ?`, payload.ProviderID,
		func() error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO providers (tmdb_id, name, logo_path) VALUES (?, ?, ?)`,
				payload.ProviderID, payload.Name, nullableString(payload.LogoPath))
			return err
		})
	if err != nil {
		return 0, fmt.Errorf("resolve provider %q: %w", payload.Name, err)
	}
	return id, nil
}

// countryCode ensures the production country exists and returns its ISO code.
func (s *Store) countryCode(ctx context.Context, tx *sql.Tx, payload tmdb.Country) (string, error) {
	var code string
	err := tx.QueryRowContext(ctx,
		`SELECT iso_code FROM production_countries WHERE iso_code = ?`, payload.ISOCode).Scan(&code)
	if err == nil {
		return code, nil
	}
	if !isNoRows(err) {
		return "", fmt.Errorf("resolve country %q: %w", payload.ISOCode, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO production_countries (iso_code, name) VALUES (?, ?)`,
		payload.ISOCode, payload.Name)
	if err != nil && !isUniqueViolation(err) {
		return "", fmt.Errorf("resolve country %q: %w", payload.ISOCode, err)
	}
	return payload.ISOCode, nil
}

// languageCode ensures the spoken language exists and returns its ISO code.
// A missing english_name is backfilled from the language table.
func (s *Store) languageCode(ctx context.Context, tx *sql.Tx, payload tmdb.Language) (string, error) {
	var code string
	err := tx.QueryRowContext(ctx,
		`SELECT iso_code FROM spoken_languages WHERE iso_code = ?`, payload.ISOCode).Scan(&code)
	if err == nil {
		return code, nil
	}
	if !isNoRows(err) {
		return "", fmt.Errorf("resolve language %q: %w", payload.ISOCode, err)
	}

	englishName := payload.EnglishName
	if englishName == "" {
		englishName = language.DisplayName(payload.ISOCode, payload.Name)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO spoken_languages (iso_code, name, english_name) VALUES (?, ?, ?)`,
		payload.ISOCode, payload.Name, nullableString(englishName))
	if err != nil && !isUniqueViolation(err) {
		return "", fmt.Errorf("resolve language %q: %w", payload.ISOCode, err)
	}
	return payload.ISOCode, nil
}
