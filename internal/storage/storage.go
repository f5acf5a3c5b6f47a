package storage

import (
	"context"
	"time"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// DefaultTTL is how long a cache entry stays valid for reads.
const DefaultTTL = 24 * time.Hour

// Store defines the durable query cache consumed by the aggregator: a
// key -> (timestamp, payload) map with lazy TTL expiry.
type Store interface {
	// Get returns the cached items for key when a row exists and is younger
	// than ttl. An expired or corrupt row reads as a miss (ok=false) without
	// being deleted; only a future Put overwrites it.
	Get(ctx context.Context, key string, ttl time.Duration) (items []types.PlaceRecord, ok bool, err error)

	// Put upserts the items under key, overwriting any previous row and its
	// timestamp wholesale. Entries are never merged.
	Put(ctx context.Context, key string, items []types.PlaceRecord) error

	Close() error
}
