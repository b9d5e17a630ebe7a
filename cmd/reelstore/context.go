package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"reelstore/internal/catalog"
	"reelstore/internal/config"
	"reelstore/internal/ingest"
	"reelstore/internal/logging"
	"reelstore/internal/tmdb"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore builds the logger and opens the catalog store for the duration
// of one command. The store logs assembly progress through the same logger
// the rest of the command uses.
func (c *commandContext) withStore(fn func(*config.Config, *catalog.Store, *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg, catalog.WithLogger(logger))
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store, logger)
}

// withImporter wires the full ingestion stack: store, provider client,
// importer.
func (c *commandContext) withImporter(username string, fn func(*ingest.Importer, *slog.Logger) error) error {
	return c.withStore(func(cfg *config.Config, store *catalog.Store, logger *slog.Logger) error {
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
		if err != nil {
			return err
		}
		importer, err := ingest.NewImporter(cfg, store, client, logger, username)
		if err != nil {
			return err
		}
		return fn(importer, logger)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
