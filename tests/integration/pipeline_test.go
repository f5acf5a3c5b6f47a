// Package integration exercises the full search-to-recommendation flow:
// provider fan-out, cache persistence, enrichment, and menu extraction
// working together against a real SQLite store.
package integration

import (
	"context"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoon-dev/lunchscout/internal/aggregator"
	"github.com/jmoon-dev/lunchscout/internal/enrich"
	"github.com/jmoon-dev/lunchscout/internal/menu"
	"github.com/jmoon-dev/lunchscout/internal/provider"
	"github.com/jmoon-dev/lunchscout/internal/storage"
	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// stubClient returns one distinct record per sub-query so the merged batch
// grows with the fan-out, plus a shared record to exercise deduplication.
type stubClient struct {
	calls atomic.Int64
}

func (c *stubClient) Search(_ context.Context, req provider.SearchRequest) ([]types.PlaceRecord, error) {
	c.calls.Add(1)

	shared := types.PlaceRecord{
		Title:       "<b>시골밥상</b>",
		Category:    "한식>백반",
		Description: "점심에 회전율이 좋아요",
		MapX:        "1270292507",
		MapY:        "374997698",
	}
	unique := types.PlaceRecord{
		Title:       req.Query,
		Category:    "일식>초밥",
		Description: "음식이 빨리 나옴",
		MapX:        "1270287000",
		MapY:        "375002000",
	}
	return []types.PlaceRecord{shared, unique}, nil
}

func TestPipeline_EndToEnd(t *testing.T) {
	store, err := storage.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	client := &stubClient{}
	agg := aggregator.New(client, store, zerolog.Nop(), nil)
	ctx := context.Background()

	records, err := agg.Search(ctx, "강남역 맛집", aggregator.ModePopular, false)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	firstFetchCalls := client.calls.Load()
	assert.Greater(t, firstFetchCalls, int64(1), "expected category fan-out")

	// Same query again: served wholesale from the cache store.
	cached, err := agg.Search(ctx, "강남역 맛집", aggregator.ModePopular, false)
	require.NoError(t, err)
	assert.Equal(t, firstFetchCalls, client.calls.Load())
	assert.Len(t, cached, len(records))

	enriched := enrich.NewPipelineWithRand(rand.New(rand.NewSource(42))).Process(cached)
	require.Len(t, enriched, len(cached))
	for _, record := range enriched {
		require.NotNil(t, record.Enrichment)
		assert.GreaterOrEqual(t, record.Enrichment.AdjustedRating, 0.0)
		assert.True(t, strings.HasPrefix(record.Enrichment.DeviationLabel, "+") ||
			strings.HasPrefix(record.Enrichment.DeviationLabel, "-") ||
			record.Enrichment.DeviationLabel == "0.00")
	}

	// Every record's description matches a quick-lunch pattern, so the
	// pipeline should rank them all as lunch-friendly.
	for _, record := range enriched {
		assert.Equal(t, types.SentimentGood, record.Enrichment.Sentiment,
			"record %q", record.CleanTitle())
	}

	extractor := menu.NewExtractorWithRand(rand.New(rand.NewSource(42)))
	keywords := extractor.Extract(enriched, 3, types.PreferenceSet{})
	assert.NotEmpty(t, keywords)
	for _, keyword := range keywords {
		assert.NotContains(t, []string{"한식", "일식"}, keyword,
			"cuisine stopwords must not surface as menu suggestions")
	}
}

func TestPipeline_DislikeNeverSurfaces(t *testing.T) {
	store, err := storage.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	agg := aggregator.New(&stubClient{}, store, zerolog.Nop(), nil)
	records, err := agg.Search(context.Background(), "강남역 맛집", aggregator.ModeRandom, false)
	require.NoError(t, err)

	prefs := types.PreferenceSet{Dislikes: []string{"초밥"}}
	for seed := int64(0); seed < 10; seed++ {
		extractor := menu.NewExtractorWithRand(rand.New(rand.NewSource(seed)))
		keywords := extractor.Extract(records, 5, prefs)
		assert.NotContains(t, keywords, "초밥")
	}
}
