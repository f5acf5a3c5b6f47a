package provider

import (
	"context"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// SortMode selects the provider-side ordering of results.
type SortMode string

const (
	// SortByComment orders by review count, a popularity proxy.
	SortByComment SortMode = "comment"
	// SortRandom uses the provider's similarity ordering, for result variety.
	SortRandom SortMode = "random"
)

// MaxDisplay is the provider's hard per-request result cap. Requests asking
// for more are capped client-side; the aggregator works around the cap by
// fanning out sub-queries instead.
const MaxDisplay = 5

// SearchRequest describes one local-search call.
type SearchRequest struct {
	Query   string
	Display int // requested count, capped at MaxDisplay
	Start   int // pagination offset, 1-based; zero means first page
	Sort    SortMode
}

// Client is the search provider interface the aggregator consumes.
type Client interface {
	Search(ctx context.Context, req SearchRequest) ([]types.PlaceRecord, error)
}
