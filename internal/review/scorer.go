// Package review scores free-text snippets for lunch suitability using
// fixed weighted keyword patterns. This is a deliberately coarse heuristic,
// not a classifier: deterministic, snippet-order-independent, no stemming.
package review

import (
	"regexp"
	"sort"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

const (
	baseScore = 50
	matchStep = 10
	minScore  = 0
	maxScore  = 100

	// Sentiment thresholds on the final 0-100 score.
	goodThreshold = 70
	badThreshold  = 30
)

// pattern couples a matching regexp with the label reported to callers.
type pattern struct {
	re    *regexp.Regexp
	label string
}

// Positive cues: fast service, turnover, lunch context, solo dining.
var positivePatterns = []pattern{
	{regexp.MustCompile(`빠르다`), "빠르다"},
	{regexp.MustCompile(`빨라`), "빨라"},
	{regexp.MustCompile(`빠름`), "빠름"},
	{regexp.MustCompile(`빨리`), "빨리"},
	{regexp.MustCompile(`회전율`), "회전율"},
	{regexp.MustCompile(`점심`), "점심"},
	{regexp.MustCompile(`음식.*나오`), "음식 나오"},
	{regexp.MustCompile(`혼밥`), "혼밥"},
}

// Negative cues: slow service, waiting, chaos.
var negativePatterns = []pattern{
	{regexp.MustCompile(`느리다`), "느리다"},
	{regexp.MustCompile(`느려`), "느려"},
	{regexp.MustCompile(`느림`), "느림"},
	{regexp.MustCompile(`느리게`), "느리게"},
	{regexp.MustCompile(`늦게`), "늦게"},
	{regexp.MustCompile(`웨이팅`), "웨이팅"},
	{regexp.MustCompile(`대기`), "대기"},
	{regexp.MustCompile(`기다림`), "기다림"},
	{regexp.MustCompile(`오래`), "오래"},
	{regexp.MustCompile(`정신없다`), "정신없다"},
}

// Analysis is the outcome of scoring a snippet set.
type Analysis struct {
	Score     int
	Sentiment types.Sentiment
	Keywords  []string
}

// Scorer scores snippet sets against the fixed pattern lists.
type Scorer struct{}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Analyze scores an ordered sequence of snippets. Every positive pattern
// match adds matchStep to a running total, every negative match subtracts it;
// the same pattern compounds across snippets. The final score is
// clamp(50+total, 0, 100). Empty input yields score 0 and SentimentUnknown.
func (s *Scorer) Analyze(snippets []string) Analysis {
	if len(snippets) == 0 {
		return Analysis{Score: 0, Sentiment: types.SentimentUnknown, Keywords: []string{}}
	}

	total := 0
	matched := make(map[string]struct{})

	for _, snippet := range snippets {
		for _, p := range positivePatterns {
			if p.re.MatchString(snippet) {
				total += matchStep
				matched[p.label] = struct{}{}
			}
		}
		for _, p := range negativePatterns {
			if p.re.MatchString(snippet) {
				total -= matchStep
				matched[p.label] = struct{}{}
			}
		}
	}

	score := baseScore + total
	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}

	keywords := make([]string, 0, len(matched))
	for label := range matched {
		keywords = append(keywords, label)
	}
	sort.Strings(keywords)

	return Analysis{Score: score, Sentiment: sentimentFor(score), Keywords: keywords}
}

func sentimentFor(score int) types.Sentiment {
	switch {
	case score >= goodThreshold:
		return types.SentimentGood
	case score <= badThreshold:
		return types.SentimentBad
	default:
		return types.SentimentNeutral
	}
}
