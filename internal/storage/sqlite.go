package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger

	// now is injectable so tests can control expiry.
	now func() time.Time
}

// payload is the persisted row body: {"items": [...]}.
type payload struct {
	Items []types.PlaceRecord `json:"items"`
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// Open creates a SQLiteStore at dbPath (":memory:" for tests), applying any
// pending schema migrations.
func Open(dbPath string, logger zerolog.Logger) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With().Str("component", "cache").Logger(),
		now:    time.Now,
	}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get implements Store. An unparseable payload logs a warning and reads as a
// miss; the corrupt row stays in place until the next Put overwrites it.
func (s *SQLiteStore) Get(ctx context.Context, key string, ttl time.Duration) ([]types.PlaceRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT json_payload, created_at FROM search_cache WHERE query_key = ?", key)

	var body string
	var createdAt float64
	switch err := row.Scan(&body, &createdAt); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to read cache row: %w", err)
	}

	age := epochSeconds(s.now()) - createdAt
	if age >= ttl.Seconds() {
		// Lazy expiry: the stale row is left for a future Put to overwrite.
		return nil, false, nil
	}

	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		s.logger.Warn().Str("key", key).Err(err).Msg("corrupt cache payload, treating as miss")
		return nil, false, nil
	}
	return p.Items, true, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, key string, items []types.PlaceRecord) error {
	body, err := json.Marshal(payload{Items: items})
	if err != nil {
		return fmt.Errorf("failed to encode cache payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO search_cache (query_key, json_payload, created_at) VALUES (?, ?, ?)",
		key, string(body), epochSeconds(s.now()))
	if err != nil {
		return fmt.Errorf("failed to write cache row: %w", err)
	}
	return nil
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
