// Package tmdb provides a minimal client for The Movie Database API.
//
// Two operations are exposed: movie search (ranked results) and full movie
// detail retrieval with credits, keywords, videos, release dates, and watch
// providers appended in one request. Transport failures and non-200 responses
// surface as errors; callers at the ingestion boundary treat them the same as
// an empty result.
package tmdb
