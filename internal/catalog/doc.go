// Package catalog persists the normalized movie catalog in SQLite.
//
// Key responsibilities:
//   - Store lifecycle: open the database, verify the embedded schema
//     version, close.
//   - Entity resolution: get-or-create for shared reference entities
//     (genres, keywords, people, companies, countries, languages,
//     collections, watch providers), keyed by the provider's external id
//     and safe against insert races through the storage-level UNIQUE
//     constraints.
//   - Aggregate assembly: SaveMovie writes a movie and every associated
//     sub-row in a single transaction; a failure anywhere rolls the whole
//     aggregate back, so no partially written movie ever persists.
//   - Users and ratings: lazy user creation and rating upsert on the 1-10
//     scale, range-checked by the storage constraint.
//
// Reference entities are created on first encounter and shared across
// movies. Credits, videos, and release dates are owned by their movie and
// removed only by cascading deletion of the movie.
package catalog
