// Package prefs persists user taste preferences as a small JSON file.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// FileStore reads and writes a PreferenceSet at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored preferences. A missing or unreadable file yields
// an empty set, so first runs need no setup step.
func (s *FileStore) Load() types.PreferenceSet {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return types.PreferenceSet{}
	}

	var set types.PreferenceSet
	if err := json.Unmarshal(data, &set); err != nil {
		return types.PreferenceSet{}
	}
	return set
}

// Save writes the preferences, deduplicating entries while keeping first-seen
// order.
func (s *FileStore) Save(set types.PreferenceSet) error {
	set.Dislikes = dedupe(set.Dislikes)
	set.Favorites = dedupe(set.Favorites)

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return items
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
