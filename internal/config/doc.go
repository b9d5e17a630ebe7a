// Package config loads, validates, and normalizes reelstore configuration.
//
// Configuration is read from a TOML file located at
// ~/.config/reelstore/config.toml (or ./reelstore.toml as a project-local
// fallback), with repository defaults applied for any value the file omits.
// The TMDB API key may also be supplied through the TMDB_API_KEY environment
// variable. All path fields are expanded (~) and made absolute during load.
package config
