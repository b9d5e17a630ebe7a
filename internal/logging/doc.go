// Package logging builds the slog loggers used across reelstore.
//
// Two output formats are supported: a compact console format for interactive
// use and a JSON format for machine consumption. Loggers can fan out to
// multiple destinations (stderr plus a log file under the configured log
// directory). NewNop returns a discard logger for tests.
package logging
