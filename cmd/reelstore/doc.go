// Package main hosts the reelstore CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces catalog ingestion as terminal
// commands: single-title adds, multi-title batches, Letterboxd export
// imports, stored-movie lookup, and configuration scaffolding. It
// centralizes configuration resolution, store access, and logger setup so
// subcommands stay declarative while the actual ingestion lives in the
// internal packages.
package main
