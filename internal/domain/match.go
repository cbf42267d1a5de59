package domain

// RecommendedScore is the minimum score that earns the "recommended" badge.
const RecommendedScore = 85

// A scored candidate produced by the matcher.
// Score annotates the result for display; it never drives the ordering.
type MatchResult struct {
	Provider      Provider
	Score         int
	IsRecommended bool
}

// SearchRequest describes a requester looking for help.
// MaxRadiusKm enables automatic radius expansion when greater than RadiusKm.
type SearchRequest struct {
	Origin      Coordinates
	RadiusKm    float64
	MaxRadiusKm float64
	ServiceType string
}

// SearchResult is the ranked output of a provider search.
// RadiusKm is the radius that produced Matches, after any expansion.
type SearchResult struct {
	RadiusKm float64
	Matches  []MatchResult
}
