package aggregator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jmoon-dev/lunchscout/internal/provider"
	"github.com/jmoon-dev/lunchscout/internal/storage"
	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// Mode selects how sub-queries ask the provider to order results.
type Mode string

const (
	// ModePopular orders sub-query results by review count.
	ModePopular Mode = "popular"
	// ModeRandom uses the provider's similarity ordering for result
	// diversity (hidden-gem mode).
	ModeRandom Mode = "random"
)

const (
	// cacheSchemaVersion tags cache keys so payload format changes never
	// collide with stale entries written by an older build.
	cacheSchemaVersion = "v2"

	// DefaultWorkers bounds the fan-out concurrency.
	DefaultWorkers = 20
)

// Config contains configuration for the aggregator.
type Config struct {
	Workers int           // concurrent sub-queries (default: DefaultWorkers)
	TTL     time.Duration // cache entry validity (default: storage.DefaultTTL)
}

// Aggregator fans a query out across category sub-queries, merges and
// deduplicates the results, and persists the merged batch in the cache store.
type Aggregator struct {
	client  provider.Client
	store   storage.Store
	workers int
	ttl     time.Duration
	logger  zerolog.Logger
}

// New creates an Aggregator. A nil config uses the defaults.
func New(client provider.Client, store storage.Store, logger zerolog.Logger, config *Config) *Aggregator {
	if config == nil {
		config = &Config{}
	}
	workers := config.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = storage.DefaultTTL
	}

	return &Aggregator{
		client:  client,
		store:   store,
		workers: workers,
		ttl:     ttl,
		logger:  logger.With().Str("component", "aggregator").Logger(),
	}
}

// CacheKey derives the store key for a (query, mode) pair: whitespace-
// normalized query text, the mode, and the schema version tag.
func CacheKey(query string, mode Mode) string {
	normalized := strings.Join(strings.Fields(query), " ")
	return normalized + "|" + string(mode) + "|" + cacheSchemaVersion
}

// Search returns the merged result set for the query, serving from the cache
// store when a fresh entry exists and forceRefresh is unset. On a miss it
// fans out one sub-query per category keyword, deduplicates on record
// identity, persists the merged batch, and returns it.
//
// Failed sub-queries contribute nothing; total transport failure yields an
// empty set with a nil error so callers stay resilient. The returned order
// is first-seen across completing workers and is not stable across runs;
// only membership and count are.
func (a *Aggregator) Search(ctx context.Context, query string, mode Mode, forceRefresh bool) ([]types.PlaceRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, types.ErrEmptyQuery
	}

	key := CacheKey(query, mode)

	if !forceRefresh {
		items, ok, err := a.store.Get(ctx, key, a.ttl)
		if err != nil {
			// A broken cache read degrades to a refetch, not a failure.
			a.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, refetching")
		} else if ok {
			a.logger.Debug().Str("key", key).Int("items", len(items)).Msg("cache hit")
			return items, nil
		}
	}

	items, err := a.fanOut(ctx, query, mode)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := a.store.Put(ctx, key, items); err != nil {
			// Persist failure is the one hard failure here (e.g. disk full).
			return nil, fmt.Errorf("persist aggregate: %w", err)
		}
	}

	a.logger.Info().Str("key", key).Int("items", len(items)).Msg("aggregate fetch complete")
	return items, nil
}

// fanOut issues all sub-queries through a bounded worker pool and merges the
// results into a deduplicated set keyed on record identity.
func (a *Aggregator) fanOut(ctx context.Context, query string, mode Mode) ([]types.PlaceRecord, error) {
	sort := provider.SortByComment
	if mode == ModeRandom {
		sort = provider.SortRandom
	}

	subQueries := buildSubQueries(query)
	semaphore := make(chan struct{}, a.workers)

	var (
		mu        sync.Mutex
		merged    = make(map[string]types.PlaceRecord, len(subQueries)*provider.MaxDisplay)
		firstSeen []string
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, subQuery := range subQueries {
		subQuery := subQuery
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			items, err := a.client.Search(gctx, provider.SearchRequest{
				Query:   subQuery,
				Display: provider.MaxDisplay,
				Sort:    sort,
			})
			if err != nil {
				// Partial success is expected under per-request rate limits:
				// a failed sub-query contributes zero items.
				a.logger.Debug().Err(err).Str("subquery", subQuery).Msg("sub-query failed")
				return nil
			}

			mu.Lock()
			for _, item := range items {
				k := item.Key()
				if _, dup := merged[k]; !dup {
					merged[k] = item
					firstSeen = append(firstSeen, k)
				}
			}
			mu.Unlock()
			return nil
		})
	}

	// Only context cancellation propagates out of the pool.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]types.PlaceRecord, 0, len(firstSeen))
	for _, k := range firstSeen {
		items = append(items, merged[k])
	}
	return items, nil
}
