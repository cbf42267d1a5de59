package services

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"roadside-dispatch-service/internal/domain"
)

// FindCandidates keeps the providers within radiusKm (inclusive) and orders them
// by availability, then distance ascending, then rating descending.
//
// The sort is stable: providers tied on all three keys keep their input order.
// A zero, negative or NaN radius matches nothing beyond the 0 km / 0 km boundary.
func FindCandidates(providers []domain.Provider, radiusKm float64) ([]domain.Provider, error) {
	candidates := make([]domain.Provider, 0, len(providers))
	for _, p := range providers {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("find candidates: %w", err)
		}
		if p.DistanceKm <= radiusKm {
			candidates = append(candidates, p)
		}
	}

	slices.SortStableFunc(candidates, func(a, b domain.Provider) int {
		if c := cmp.Compare(a.Availability.Rank(), b.Availability.Rank()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return cmp.Compare(b.Rating, a.Rating)
	})

	return candidates, nil
}

// ComputeScore rates a single provider on a 0-100 scale from four additive terms:
// distance band, rating, availability and free capacity.
func ComputeScore(p domain.Provider) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("compute score: %w", err)
	}

	var sum float64
	switch {
	case p.DistanceKm <= 2:
		sum += 30
	case p.DistanceKm <= 5:
		sum += 20
	default:
		sum += 10
	}

	sum += p.Rating * 10

	switch p.Availability {
	case domain.Available:
		sum += 25
	case domain.Busy:
		sum += 15
	}

	// Overloaded providers (load above capacity) get a negative term.
	sum += p.FreeCapacity() * 15

	return clampScore(int(math.Round(sum))), nil
}

func clampScore(s int) int {
	return min(max(s, 0), 100)
}

// RankAndScore runs FindCandidates and annotates every candidate with its score.
// Results keep the candidate order; score is a display annotation only.
func RankAndScore(providers []domain.Provider, radiusKm float64) ([]domain.MatchResult, error) {
	candidates, err := FindCandidates(providers, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("rank and score: %w", err)
	}

	results := make([]domain.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		score, err := ComputeScore(c)
		if err != nil {
			return nil, fmt.Errorf("rank and score: %w", err)
		}
		results = append(results, domain.MatchResult{
			Provider:      c,
			Score:         score,
			IsRecommended: score >= domain.RecommendedScore,
		})
	}

	return results, nil
}
