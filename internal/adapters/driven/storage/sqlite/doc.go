// Package sqlite provides a persistent discovery result cache on SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Cached results survive process restarts, so repeated CLI
// invocations for the same subject skip the provider round-trips until the
// entry expires.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.skillscout/data/cache.db
package sqlite
