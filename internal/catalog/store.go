package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"reelstore/internal/config"
	"reelstore/internal/logging"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db          *sql.DB
	path        string
	logger      *slog.Logger
	creditLimit int
}

// Option configures a Store during Open.
type Option func(*Store)

// WithLogger attaches a logger used for assembly progress events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCreditLimit overrides how many cast and crew credits are kept per
// movie, in provider order.
func WithCreditLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.creditLimit = limit
		}
	}
}

// Open initializes or connects to the catalog database and verifies the schema.
func Open(cfg *config.Config, opts ...Option) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	// Pragmas ride on the DSN so every pooled connection enforces foreign
	// keys; a bare Exec would only reach one connection.
	dsn := "file:" + dbPath +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	store := &Store{
		db:          db,
		path:        dbPath,
		logger:      logging.NewNop(),
		creditLimit: cfg.Import.CreditLimit,
	}
	if store.creditLimit <= 0 {
		store.creditLimit = 30
	}
	for _, opt := range opts {
		opt(store)
	}

	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the catalog database file.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying handle for ad-hoc queries in tests and tooling.
func (s *Store) DB() *sql.DB {
	return s.db
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
