package services

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"roadside-dispatch-service/internal/domain"
	"roadside-dispatch-service/internal/platform/metrics"
	"roadside-dispatch-service/internal/platform/obs"
	"roadside-dispatch-service/internal/ports"
)

// maxConcurrentLookups bounds single-pair distance lookups when the provider
// has no batched path.
const maxConcurrentLookups = 5

// SearchProviders loads the directory, measures every provider's distance from
// the requester, and ranks the ones inside the radius.
//
// When nothing is found and req.MaxRadiusKm exceeds req.RadiusKm, the radius is
// doubled (capped at MaxRadiusKm) until a candidate appears or the cap is hit.
// Distances are computed once; only the radius filter is re-run.
func SearchProviders(
	ctx context.Context,
	req domain.SearchRequest,
	repo ports.ProviderRepository,
	provider ports.DistanceProvider,
) (_ *domain.SearchResult, err error) {
	defer obs.Time(ctx, "search.providers")(&err)
	defer func() {
		if err != nil {
			metrics.ProviderSearches.WithLabelValues("error").Inc()
		}
	}()

	if err := validateSearchRequest(req); err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}

	all, err := repo.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("search providers: list providers: %w", err)
	}

	providers := make([]domain.Provider, 0, len(all))
	for _, p := range all {
		if p.Offers(req.ServiceType) {
			providers = append(providers, p)
		}
	}

	if err := fillDistances(ctx, req.Origin, providers, provider); err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}

	radius := req.RadiusKm
	for {
		matches, err := RankAndScore(providers, radius)
		if err != nil {
			return nil, fmt.Errorf("search providers: %w", err)
		}

		if len(matches) > 0 || radius >= req.MaxRadiusKm {
			outcome := "found"
			if len(matches) == 0 {
				outcome = "empty"
			}
			metrics.ProviderSearches.WithLabelValues(outcome).Inc()
			metrics.SearchCandidates.Observe(float64(len(matches)))

			return &domain.SearchResult{RadiusKm: radius, Matches: matches}, nil
		}

		radius = math.Min(radius*2, req.MaxRadiusKm)
		metrics.RadiusExpansions.Inc()
	}
}

func validateSearchRequest(req domain.SearchRequest) error {
	if err := req.Origin.Validate(); err != nil {
		return err
	}
	if math.IsNaN(req.RadiusKm) || math.IsInf(req.RadiusKm, 0) || req.RadiusKm <= 0 {
		return fmt.Errorf("%w: radius_km must be a positive number, got %v", domain.ErrInvalidArgument, req.RadiusKm)
	}
	if math.IsNaN(req.MaxRadiusKm) || math.IsInf(req.MaxRadiusKm, 0) ||
		(req.MaxRadiusKm != 0 && req.MaxRadiusKm < req.RadiusKm) {
		return fmt.Errorf("%w: max_radius_km must be 0 or at least radius_km, got %v", domain.ErrInvalidArgument, req.MaxRadiusKm)
	}
	return nil
}

// fillDistances writes DistanceKm into providers in place.
func fillDistances(
	ctx context.Context,
	origin domain.Coordinates,
	providers []domain.Provider,
	provider ports.DistanceProvider,
) error {
	if len(providers) == 0 {
		return nil
	}

	// Prefer a single origin->many lookup when supported to reduce external API calls.
	if mp, ok := provider.(ports.DistanceMatrixProvider); ok {
		dests := make([]domain.Coordinates, 0, len(providers))
		for _, p := range providers {
			dests = append(dests, p.Location)
		}

		results, err := mp.GetDistances(ctx, origin, dests)
		if err != nil {
			return fmt.Errorf("get matrix distances from %s: %w", origin.Key(), err)
		}

		for i := range providers {
			r, ok := results[providers[i].Location.Key()]
			if !ok {
				return fmt.Errorf("missing distance for provider %q", providers[i].ID)
			}
			providers[i].DistanceKm = r.DistanceKm
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	// Each goroutine owns exactly one slice element.
	for i := range providers {
		g.Go(func() error {
			r, err := provider.GetDistance(gctx, origin, providers[i].Location)
			if err != nil {
				return fmt.Errorf("get distance to provider %q: %w", providers[i].ID, err)
			}
			providers[i].DistanceKm = r.DistanceKm
			return nil
		})
	}

	return g.Wait()
}
