package menu

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

func batchFromCategories(categories ...string) []types.PlaceRecord {
	batch := make([]types.PlaceRecord, len(categories))
	for i, c := range categories {
		batch[i] = types.PlaceRecord{Category: c}
	}
	return batch
}

func TestExtract_PreferenceProperties(t *testing.T) {
	batch := batchFromCategories(
		"한식>김치찌개",
		"한식>오이소박이",
		"일식>초밥",
		"일식>초밥",
		"중식>짜장면",
	)
	prefs := types.PreferenceSet{
		Dislikes:  []string{"오이"},
		Favorites: []string{"초밥"},
	}

	// Output order is sampled, so assert membership only — and across many
	// seeds so no lucky shuffle hides a violation.
	for seed := int64(0); seed < 20; seed++ {
		e := NewExtractorWithRand(rand.New(rand.NewSource(seed)))
		got := e.Extract(batch, 10, prefs)

		assert.NotContains(t, got, "오이소박이", "dislikes are excluded pre-count")
		assert.Contains(t, got, "초밥")
		assert.Contains(t, got, "김치찌개")
	}
}

func TestExtract_DropsStopwordsAndShortTokens(t *testing.T) {
	batch := batchFromCategories("한식>김치찌개", "음식점>집>죽")

	e := NewExtractorWithRand(rand.New(rand.NewSource(1)))
	got := e.Extract(batch, 10, types.PreferenceSet{})

	assert.Contains(t, got, "김치찌개")
	assert.NotContains(t, got, "한식", "taxonomy roots are stopwords")
	assert.NotContains(t, got, "음식점")
	assert.NotContains(t, got, "집", "single-rune token")
	assert.NotContains(t, got, "죽", "single-rune token")
}

func TestExtract_FavoriteBoostKeepsRareKeywordInPool(t *testing.T) {
	// 50 common keywords appear twice each and fill the candidate pool.
	// 초밥 appears once but the x3 boost lifts it above them; the unboosted
	// single-occurrence 오리백숙 must fall off the pool edge instead.
	var categories []string
	for i := 0; i < 50; i++ {
		kw := fmt.Sprintf("메뉴%02d", i)
		categories = append(categories, "한식>"+kw, "한식>"+kw)
	}
	categories = append(categories, "일식>초밥", "한식>오리백숙")

	prefs := types.PreferenceSet{Favorites: []string{"초밥"}}

	e := NewExtractorWithRand(rand.New(rand.NewSource(1)))
	got := e.Extract(batchFromCategories(categories...), 60, prefs)

	require.Len(t, got, 50, "pool is capped at 50")
	assert.Contains(t, got, "초밥")
	assert.NotContains(t, got, "오리백숙")
}

func TestExtract_ReturnsAllWhenPoolFits(t *testing.T) {
	batch := batchFromCategories("한식>김치찌개", "일식>초밥")

	e := NewExtractorWithRand(rand.New(rand.NewSource(1)))
	got := e.Extract(batch, 10, types.PreferenceSet{})

	assert.ElementsMatch(t, []string{"김치찌개", "초밥"}, got)
}

func TestExtract_SamplesExactlyTopN(t *testing.T) {
	batch := batchFromCategories(
		"한식>김치찌개", "한식>된장찌개", "일식>초밥", "일식>라멘",
		"중식>짜장면", "중식>짬뽕", "양식>파스타", "양식>피자",
	)

	e := NewExtractorWithRand(rand.New(rand.NewSource(1)))
	got := e.Extract(batch, 3, types.PreferenceSet{})

	assert.Len(t, got, 3)
}

func TestExtract_EmptyInputs(t *testing.T) {
	e := NewExtractorWithRand(rand.New(rand.NewSource(1)))

	assert.Nil(t, e.Extract(nil, 10, types.PreferenceSet{}))
	assert.Nil(t, e.Extract(batchFromCategories("한식>김치찌개"), 0, types.PreferenceSet{}))
}

func TestPickRandom(t *testing.T) {
	e := NewExtractorWithRand(rand.New(rand.NewSource(1)))

	assert.Equal(t, "", e.PickRandom(nil))

	keywords := []string{"김치찌개", "초밥", "파스타"}
	for i := 0; i < 10; i++ {
		assert.Contains(t, keywords, e.PickRandom(keywords))
	}
}
