package types

import (
	"regexp"
	"strings"
)

// Sentiment labels the outcome of lunch-suitability text scoring.
type Sentiment string

const (
	SentimentGood    Sentiment = "Good"
	SentimentNeutral Sentiment = "Neutral"
	SentimentBad     Sentiment = "Bad"
	SentimentUnknown Sentiment = "Unknown"
)

// markupPattern strips the inline tags the provider embeds in titles,
// e.g. "<b>시골밥상</b>".
var markupPattern = regexp.MustCompile(`<[^>]*>`)

// PlaceRecord is one candidate venue. The provider fields carry the raw
// strings exactly as received from the search provider; Enrichment stays nil
// until the record has passed through the enrichment pipeline, so callers can
// distinguish a raw record from an enriched one without sparse-field checks.
//
// UserRating may hold a synthesized placeholder when the provider supplied no
// rating; callers must not assume it always reflects a genuine external score.
type PlaceRecord struct {
	Title       string `json:"title"`
	Link        string `json:"link,omitempty"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Telephone   string `json:"telephone,omitempty"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
	UserRating  string `json:"userRating,omitempty"`

	Enrichment *Enrichment `json:"enrichment,omitempty"`
}

// Enrichment holds the fields derived by the pipeline. The provider never
// populates any of these.
type Enrichment struct {
	RatingValue     float64   `json:"ratingValue"`
	AdjustedRating  float64   `json:"adjustedRating"`
	RatingDeviation float64   `json:"ratingDeviation"`
	DeviationLabel  string    `json:"deviationLabel"`
	LunchScore      int       `json:"lunchScore"`
	LunchKeywords   []string  `json:"lunchKeywords"`
	Sentiment       Sentiment `json:"sentiment"`

	// Latitude/Longitude are set only when the raw coordinate pair converted
	// cleanly; HasFix reports that.
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	HasFix    bool    `json:"hasFix,omitempty"`
}

// CleanTitle returns the title with provider markup removed.
func (p *PlaceRecord) CleanTitle() string {
	return strings.TrimSpace(markupPattern.ReplaceAllString(p.Title, ""))
}

// Key returns the identity used to deduplicate records within one aggregated
// batch: the raw coordinate pair plus the markup-stripped title.
func (p *PlaceRecord) Key() string {
	return p.MapX + "|" + p.MapY + "|" + p.CleanTitle()
}

// MatchesKeyword reports whether a menu keyword appears anywhere a diner
// would spot it: the category taxonomy, the title, or the description snippet.
func (p *PlaceRecord) MatchesKeyword(keyword string) bool {
	if keyword == "" {
		return false
	}
	return strings.Contains(p.Category, keyword) ||
		strings.Contains(p.CleanTitle(), keyword) ||
		strings.Contains(p.Description, keyword)
}
