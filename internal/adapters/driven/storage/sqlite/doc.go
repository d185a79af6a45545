// Package sqlite provides the SQLite-backed session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Session values live in a single
// key/value metadata table.
//
// # Schema
//
// The schema is managed by goose migrations embedded from the migrations/
// directory and applied when the store opens.
//
// # Data Location
//
// By default, the database is stored at ~/.userdir/userdir.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
