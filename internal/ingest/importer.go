package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"reelstore/internal/catalog"
	"reelstore/internal/config"
	"reelstore/internal/logging"
	"reelstore/internal/tmdb"
)

// ErrNoMatch reports that the provider search returned no results for a
// title.
var ErrNoMatch = errors.New("no search results")

// Source is the provider surface the importer depends on.
type Source interface {
	SearchMovie(ctx context.Context, query string) (*tmdb.SearchResponse, error)
	MovieDetails(ctx context.Context, movieID int64) (*tmdb.MovieDetails, error)
}

// Stats accumulates the outcome counters of one batch run. Every item lands
// in exactly one of Imported, Skipped, or Errors; RatingsAdded counts new
// rating rows, which skipped items may still contribute.
type Stats struct {
	Total        int
	Imported     int
	Skipped      int
	Errors       int
	RatingsAdded int
}

// Importer ingests movies one at a time through the provider client and the
// catalog store.
type Importer struct {
	store       *catalog.Store
	source      Source
	logger      *slog.Logger
	username    string
	itemDelay   time.Duration
	ratingScale float64
	lockPath    string

	user *catalog.User
}

// NewImporter wires an importer from configuration. username overrides the
// configured default when non-empty.
func NewImporter(cfg *config.Config, store *catalog.Store, source Source, logger *slog.Logger, username string) (*Importer, error) {
	if cfg == nil || store == nil || source == nil {
		return nil, errors.New("importer requires config, store, and source")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if username == "" {
		username = cfg.Import.DefaultUsername
	}
	return &Importer{
		store:       store,
		source:      source,
		logger:      logger,
		username:    username,
		itemDelay:   time.Duration(cfg.Import.ItemDelayMS) * time.Millisecond,
		ratingScale: cfg.Import.RatingScale,
		lockPath:    filepath.Join(cfg.Paths.LogDir, "reelstore-import.lock"),
	}, nil
}

// Run processes items strictly in order, pausing itemDelay between
// successive items. Per-item failures are logged and counted; only lock
// contention and context cancellation abort the batch.
func (imp *Importer) Run(ctx context.Context, items []Request) (Stats, error) {
	stats := Stats{Total: len(items)}

	lock := flock.New(imp.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return stats, fmt.Errorf("acquire import lock: %w", err)
	}
	if !ok {
		return stats, errors.New("another import is already running")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	runLogger := imp.logger.With("run_id", uuid.NewString())
	runLogger.Info("import started", "items", len(items), "username", imp.username)

	for i, item := range items {
		if i > 0 && imp.itemDelay > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(imp.itemDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		imp.processItem(ctx, runLogger, item, &stats)
	}

	runLogger.Info("import finished",
		"total", stats.Total, "imported", stats.Imported, "skipped", stats.Skipped,
		"errors", stats.Errors, "ratings_added", stats.RatingsAdded)
	return stats, nil
}

func (imp *Importer) processItem(ctx context.Context, logger *slog.Logger, item Request, stats *Stats) {
	logger = logger.With("label", item.TitleYear)

	movie, skipped, err := imp.ingestOne(ctx, item.TitleYear)
	if err != nil {
		stats.Errors++
		logger.Warn("item failed", "error", err)
		return
	}
	if skipped {
		stats.Skipped++
		logger.Info("already in catalog", "movie", movie.Summary())
	} else {
		stats.Imported++
		logger.Info("imported", "movie", movie.Summary())
	}

	if item.UserRating == nil || *item.UserRating <= 0 {
		return
	}
	created, err := imp.recordRating(ctx, movie, *item.UserRating)
	if err != nil {
		logger.Warn("rating not stored", "error", err)
		return
	}
	if created {
		stats.RatingsAdded++
	}
}

// ingestOne reconciles a label, fetches the detail payload, and persists it.
// skipped reports that the movie already existed and no fetch was made.
func (imp *Importer) ingestOne(ctx context.Context, label string) (movie *catalog.Movie, skipped bool, err error) {
	title, year := ParseTitleYear(label)

	search, err := imp.source.SearchMovie(ctx, title)
	if err != nil {
		return nil, false, fmt.Errorf("search %q: %w", title, err)
	}
	match, ok := BestMatch(search.Results, year)
	if !ok {
		return nil, false, fmt.Errorf("search %q: %w", title, ErrNoMatch)
	}

	if existing, err := imp.store.MovieByTMDBID(ctx, match.ID); err == nil {
		return existing, true, nil
	} else if !errors.Is(err, catalog.ErrNotFound) {
		return nil, false, err
	}

	detail, err := imp.source.MovieDetails(ctx, match.ID)
	if err != nil {
		return nil, false, fmt.Errorf("fetch details for %q: %w", match.Title, err)
	}
	saved, err := imp.store.SaveMovie(ctx, detail)
	if err != nil {
		return nil, false, fmt.Errorf("save %q: %w", detail.Title, err)
	}
	return saved, false, nil
}

func (imp *Importer) recordRating(ctx context.Context, movie *catalog.Movie, raw float64) (bool, error) {
	if imp.user == nil {
		user, err := imp.store.GetOrCreateUser(ctx, imp.username)
		if err != nil {
			return false, err
		}
		imp.user = user
	}
	return imp.store.UpsertRating(ctx, imp.user.ID, movie.ID, raw, imp.ratingScale)
}

// AddMovie ingests a single title outside a batch. It returns the stored
// movie and whether it already existed.
func (imp *Importer) AddMovie(ctx context.Context, label string) (*catalog.Movie, bool, error) {
	movie, skipped, err := imp.ingestOne(ctx, label)
	if err != nil {
		return nil, false, err
	}
	return movie, skipped, nil
}
