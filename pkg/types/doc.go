// Package types provides the shared domain types for lunchscout.
//
// This package defines the record shapes that flow between the aggregation,
// enrichment, and recommendation components.
//
// # Core Types
//
// PlaceRecord represents one candidate venue as returned by the search
// provider, with derived fields attached in an explicit Enrichment region:
//
//	place := types.PlaceRecord{
//	    Title:    "<b>시골밥상</b>",
//	    Category: "한식>김치찌개",
//	    MapX:     "1270292507",
//	    MapY:     "374997698",
//	}
//	place.Enrichment == nil // not yet enriched
//
// A nil Enrichment marks a raw provider record; the enrichment pipeline
// returns copies carrying a populated Enrichment, so the two states are
// distinguishable without sparse-field checks.
//
// # Identity
//
// Within one aggregated batch a record is identified by its raw coordinate
// pair plus the markup-stripped title:
//
//	key := place.Key() // "1270292507|374997698|시골밥상"
//
// The aggregator deduplicates on this key across all fan-out sub-queries.
//
// # Preferences
//
// PreferenceSet carries the user's dislike and favorite menu keywords. It is
// owned by the surrounding application; the menu extractor only reads it.
package types
