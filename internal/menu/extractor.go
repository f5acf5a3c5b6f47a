// Package menu extracts representative, pickable menu keywords from the
// category taxonomy of an aggregated place batch, weighted by user taste.
package menu

import (
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

const (
	// candidatePoolSize caps the ranked pool the final sample is drawn from.
	candidatePoolSize = 50

	// favoriteBoost multiplies the frequency of any keyword containing a
	// favorite. Applied at the counter level, before ranking, so a rare but
	// favored keyword can outrank a common neutral one.
	favoriteBoost = 3
)

// stopwords are generic venue terms that never make useful menu keywords.
var stopwords = map[string]struct{}{
	"음식점": {}, "식당": {}, "맛집": {}, "한식": {}, "양식": {},
	"중식": {}, "일식": {}, "분식": {}, "전문점": {}, "요리": {},
	"집": {}, "카페": {}, "디저트": {}, "입구": {}, "거리": {}, "역": {},
}

// Extractor tokenizes category taxonomy strings into ranked menu keywords.
// Output across calls with identical input is consciously non-deterministic
// (a uniform sample from the ranked pool) to promote variety; inject a seeded
// source to pin it.
type Extractor struct {
	rng *rand.Rand
}

// NewExtractor creates an Extractor with time-seeded sampling.
func NewExtractor() *Extractor {
	return NewExtractorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewExtractorWithRand creates an Extractor using the given source.
func NewExtractorWithRand(rng *rand.Rand) *Extractor {
	return &Extractor{rng: rng}
}

// Extract tokenizes every record's category string on '>' and ',', trims the
// parts, and drops single-rune parts, stopwords, and anything containing a
// dislike keyword (excluded before counting, not filtered after). Surviving
// parts are frequency-counted, favorites are boosted, and the top candidates
// by boosted frequency form a pool from which up to topN keywords are
// uniformly sampled.
func (e *Extractor) Extract(batch []types.PlaceRecord, topN int, prefs types.PreferenceSet) []string {
	if len(batch) == 0 || topN <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var firstSeen []string

	for _, rec := range batch {
		for _, part := range splitCategory(rec.Category) {
			kw := strings.TrimSpace(part)
			if utf8.RuneCountInString(kw) <= 1 {
				continue
			}
			if _, ok := stopwords[kw]; ok {
				continue
			}
			if containsAny(kw, prefs.Dislikes) {
				continue
			}
			if _, seen := counts[kw]; !seen {
				firstSeen = append(firstSeen, kw)
			}
			counts[kw]++
		}
	}

	for kw := range counts {
		if containsAny(kw, prefs.Favorites) {
			counts[kw] *= favoriteBoost
		}
	}

	// Rank by boosted frequency; first-seen order breaks ties so ranking
	// stays stable for a given batch.
	rank := make(map[string]int, len(firstSeen))
	for i, kw := range firstSeen {
		rank[kw] = i
	}
	candidates := append([]string(nil), firstSeen...)
	sort.Slice(candidates, func(i, j int) bool {
		if counts[candidates[i]] != counts[candidates[j]] {
			return counts[candidates[i]] > counts[candidates[j]]
		}
		return rank[candidates[i]] < rank[candidates[j]]
	})
	if len(candidates) > candidatePoolSize {
		candidates = candidates[:candidatePoolSize]
	}

	if len(candidates) <= topN {
		return candidates
	}

	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[:topN]
}

// PickRandom returns one keyword from the extracted set, or "" when empty.
func (e *Extractor) PickRandom(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	return keywords[e.rng.Intn(len(keywords))]
}

func splitCategory(category string) []string {
	return strings.FieldsFunc(category, func(r rune) bool {
		return r == '>' || r == ','
	})
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
