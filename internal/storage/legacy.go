package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// legacyEntry mirrors the flat-file cache format that predates the SQLite
// store: one JSON document mapping query keys to timestamped item lists.
type legacyEntry struct {
	Timestamp float64           `json:"timestamp"`
	Items     []json.RawMessage `json:"items"`
}

// MigrateLegacyJSON imports a legacy flat-file cache into the store, keyed
// row by row with the original timestamps preserved, then renames the file to
// path+".bak". Existing rows win over legacy ones. The migration is
// idempotent: a missing file is a no-op, and the rename prevents a second
// import. Returns the number of entries imported.
func (s *SQLiteStore) MigrateLegacyJSON(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy cache: %w", err)
	}

	var entries map[string]legacyEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("failed to parse legacy cache: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	for key, entry := range entries {
		if len(entry.Items) == 0 {
			continue
		}

		ts := entry.Timestamp
		if ts == 0 {
			ts = epochSeconds(s.now())
		}

		body, err := json.Marshal(map[string][]json.RawMessage{"items": entry.Items})
		if err != nil {
			return 0, fmt.Errorf("failed to encode legacy entry %q: %w", key, err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO search_cache (query_key, json_payload, created_at) VALUES (?, ?, ?)",
			key, string(body), ts); err != nil {
			return 0, fmt.Errorf("failed to import legacy entry %q: %w", key, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit migration: %w", err)
	}

	backupPath := path + ".bak"
	if err := os.Rename(path, backupPath); err != nil {
		return count, fmt.Errorf("migrated but failed to back up legacy file: %w", err)
	}

	s.logger.Info().Int("entries", count).Str("backup", backupPath).Msg("migrated legacy cache file")
	return count, nil
}
