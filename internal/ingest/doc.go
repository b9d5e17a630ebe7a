// Package ingest drives movie ingestion: it reconciles free-text labels
// against provider search results, fetches full detail payloads, persists
// them through the catalog store, and records user ratings. Batches run
// strictly sequentially with a fixed delay between items.
package ingest
