package catalog

import (
	"context"
	"fmt"
	"math"
	"time"
)

// GetOrCreateUser returns the user with the given username, creating it on
// first use.
func (s *Store) GetOrCreateUser(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username must not be empty: %w", ErrValidation)
	}

	user, err := s.userByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("query user: %w", err)
	}

	displayName := "Letterboxd User: " + username
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (username, display_name) VALUES (?, ?)`,
		username, displayName)
	if err != nil && !isUniqueViolation(err) {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	user, err = s.userByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("reread user: %w", err)
	}
	return user, nil
}

func (s *Store) userByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, COALESCE(display_name, '') FROM users WHERE username = ?`,
		username).Scan(&user.ID, &user.Username, &user.DisplayName)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertRating stores a user's rating for a movie, converting the raw value
// to the 1-10 integer scale via round(raw * scale). An existing rating for
// the (user, movie) pair is overwritten; created reports whether a new row
// was inserted. Values outside [1,10] are rejected by the storage constraint
// and surface as ErrValidation.
func (s *Store) UpsertRating(ctx context.Context, userID, movieID int64, raw, scale float64) (created bool, err error) {
	value := int64(math.Round(raw * scale))

	var existingID int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM user_movie_ratings WHERE user_id = ? AND movie_id = ?`,
		userID, movieID).Scan(&existingID)
	switch {
	case err == nil:
		_, err = s.db.ExecContext(ctx,
			`UPDATE user_movie_ratings SET rating = ? WHERE id = ?`, value, existingID)
		if err != nil {
			return false, wrapRatingError(value, err)
		}
		return false, nil
	case isNoRows(err):
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO user_movie_ratings (user_id, movie_id, rating, created_at)
			 VALUES (?, ?, ?, ?)`,
			userID, movieID, value, time.Now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return false, wrapRatingError(value, err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("query rating: %w", err)
	}
}

// RatingFor returns the stored rating for a (user, movie) pair, or
// ErrNotFound.
func (s *Store) RatingFor(ctx context.Context, userID, movieID int64) (*Rating, error) {
	var rating Rating
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, movie_id, rating FROM user_movie_ratings
		 WHERE user_id = ? AND movie_id = ?`, userID, movieID).
		Scan(&rating.ID, &rating.UserID, &rating.MovieID, &rating.Value)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("rating user=%d movie=%d: %w", userID, movieID, ErrNotFound)
		}
		return nil, fmt.Errorf("query rating: %w", err)
	}
	return &rating, nil
}

func wrapRatingError(value int64, err error) error {
	if isCheckViolation(err) {
		return fmt.Errorf("rating %d outside allowed range [1,10]: %w", value, ErrValidation)
	}
	return fmt.Errorf("store rating: %w", err)
}
