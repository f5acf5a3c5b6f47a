// Package storage provides SQLite-based persistence for aggregated search
// results.
//
// The store is a durable key -> (timestamp, payload) map with lazy TTL
// expiry: Get treats a row older than the TTL as absent without deleting it,
// and Put overwrites rows wholesale. Concurrent writes to the same key are
// last-writer-wins, which is acceptable for a single-instance deployment.
//
// # Usage
//
//	store, err := storage.Open("lunchscout.db", logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	items, ok, err := store.Get(ctx, key, storage.DefaultTTL)
//	if !ok {
//	    // miss, expired, or corrupt: fetch fresh and Put
//	}
//
// # Drivers
//
// Two SQLite drivers are supported via build tags: modernc.org/sqlite
// (pure Go, the default) and github.com/mattn/go-sqlite3 (CGO, tag
// cgo_sqlite). See build_purego.go and build_cgo.go.
//
// # Legacy migration
//
// MigrateLegacyJSON imports the older whole-file JSON cache format as
// individual keyed rows, preserving timestamps, and renames the source file
// to a .bak suffix so the import runs at most once.
package storage
