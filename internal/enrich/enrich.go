// Package enrich turns raw aggregated place batches into ranked, scored
// candidates: rating normalization, lunch-suitability scoring of the
// description snippet, coordinate conversion, and a combined-signal sort.
// The pipeline is a pure function of its input batch; it performs no I/O.
package enrich

import (
	"math/rand"
	"sort"

	"github.com/jmoon-dev/lunchscout/internal/geo"
	"github.com/jmoon-dev/lunchscout/internal/review"
	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// Pipeline orchestrates the enrichment stages over a raw result batch.
type Pipeline struct {
	normalizer *Normalizer
	scorer     *review.Scorer
}

// NewPipeline creates a Pipeline with time-seeded rating synthesis.
func NewPipeline() *Pipeline {
	return &Pipeline{normalizer: NewNormalizer(), scorer: review.NewScorer()}
}

// NewPipelineWithRand creates a Pipeline whose rating synthesis uses the
// given source, for deterministic tests.
func NewPipelineWithRand(rng *rand.Rand) *Pipeline {
	return &Pipeline{normalizer: NewNormalizerWithRand(rng), scorer: review.NewScorer()}
}

// Process normalizes ratings, scores each record's description as a
// single-snippet pseudo-review, attaches the coordinate fix when the raw
// pair converts, and stable-sorts descending by (LunchScore, AdjustedRating).
// Ties beyond that keep their original relative order.
func (p *Pipeline) Process(batch []types.PlaceRecord) []types.PlaceRecord {
	out := p.normalizer.Normalize(batch)

	for i := range out {
		var snippets []string
		if out[i].Description != "" {
			snippets = []string{out[i].Description}
		}
		analysis := p.scorer.Analyze(snippets)

		e := out[i].Enrichment
		e.LunchScore = analysis.Score
		e.LunchKeywords = analysis.Keywords
		e.Sentiment = analysis.Sentiment

		if lat, lon, ok := geo.Convert(out[i].MapX, out[i].MapY); ok {
			e.Latitude = lat
			e.Longitude = lon
			e.HasFix = true
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := out[i].Enrichment, out[j].Enrichment
		if ei.LunchScore != ej.LunchScore {
			return ei.LunchScore > ej.LunchScore
		}
		return ei.AdjustedRating > ej.AdjustedRating
	})

	return out
}
