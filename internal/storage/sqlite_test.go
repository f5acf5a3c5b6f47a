package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Use in-memory database for testing
	store, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func samplePlaces() []types.PlaceRecord {
	return []types.PlaceRecord{
		{Title: "<b>시골밥상</b>", Category: "한식>김치찌개", MapX: "1270292507", MapY: "374997698"},
		{Title: "<b>은행골</b>", Category: "일식>초밥", Description: "입에서 녹는 초밥"},
	}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	store := setupTestStore(t)

	var version string
	err := store.db.QueryRow("SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
}

func TestPutGet_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "강남역 맛집|popular|v2", samplePlaces()))

	items, ok, err := store.Get(ctx, "강남역 맛집|popular|v2", DefaultTTL)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "시골밥상", items[0].CleanTitle())
	assert.Equal(t, "일식>초밥", items[1].Category)
}

func TestGet_MissingKey(t *testing.T) {
	store := setupTestStore(t)

	_, ok, err := store.Get(context.Background(), "없는키", DefaultTTL)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_ExpiredRowReadsAsMiss(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", samplePlaces()))

	// Shift the clock past the TTL; the row must read as absent but stay put.
	store.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	_, ok, err := store.Get(ctx, "k", DefaultTTL)
	require.NoError(t, err)
	assert.False(t, ok)

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM search_cache").Scan(&count))
	assert.Equal(t, 1, count, "lazy expiry never deletes")
}

func TestPut_OverwritesWholesale(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", samplePlaces()))
	require.NoError(t, store.Put(ctx, "k", samplePlaces()[:1]))

	items, ok, err := store.Get(ctx, "k", DefaultTTL)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, items, 1, "entries are replaced, never merged")
}

func TestGet_CorruptPayloadReadsAsMiss(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		"INSERT INTO search_cache (query_key, json_payload, created_at) VALUES (?, ?, ?)",
		"bad", "{not json", epochSeconds(time.Now()))
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "bad", DefaultTTL)
	require.NoError(t, err, "corruption never crashes the read path")
	assert.False(t, ok)
}

func TestMigrateLegacyJSON_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	legacyPath := filepath.Join(t.TempDir(), "search_cache.json")
	legacy := `{
		"강남역 맛집|popular|v1": {
			"timestamp": 1700000000.5,
			"items": [{"title": "<b>시골밥상</b>", "category": "한식>김치찌개", "mapx": "1270292507", "mapy": "374997698"}]
		}
	}`
	require.NoError(t, os.WriteFile(legacyPath, []byte(legacy), 0o644))

	count, err := store.MigrateLegacyJSON(ctx, legacyPath)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The original timestamp is preserved, so read with a clock near it.
	store.now = func() time.Time { return time.Unix(1700000100, 0) }

	items, ok, err := store.Get(ctx, "강남역 맛집|popular|v1", DefaultTTL)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "시골밥상", items[0].CleanTitle())
	assert.Equal(t, "한식>김치찌개", items[0].Category)

	// The legacy file is renamed to a .bak backup.
	assert.NoFileExists(t, legacyPath)
	assert.FileExists(t, legacyPath+".bak")
}

func TestMigrateLegacyJSON_MissingFileIsNoOp(t *testing.T) {
	store := setupTestStore(t)

	count, err := store.MigrateLegacyJSON(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMigrateLegacyJSON_ExistingRowsWin(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", samplePlaces()))

	legacyPath := filepath.Join(t.TempDir(), "search_cache.json")
	legacy := `{"k": {"timestamp": 1700000000, "items": [{"title": "old"}]}}`
	require.NoError(t, os.WriteFile(legacyPath, []byte(legacy), 0o644))

	_, err := store.MigrateLegacyJSON(ctx, legacyPath)
	require.NoError(t, err)

	items, ok, err := store.Get(ctx, "k", DefaultTTL)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, items, 2, "INSERT OR IGNORE keeps the newer row")
}
