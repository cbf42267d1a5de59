package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"roadside-dispatch-service/internal/domain"
	"roadside-dispatch-service/internal/platform/obs"
	"roadside-dispatch-service/internal/ports"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

// ORSDistanceProvider implements DistanceMatrixProvider using the
// OpenRouteService driving matrix.
//
// Requests are deduplicated by coordinate, served from the distance cache when
// possible, and retried with backoff on transient failures.
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	profile       string
	backoff       time.Duration
	distanceCache ports.DistanceCache
}

func NewORSDistanceProvider(
	apiKey string,
	baseURL string,
	profile string,
	distanceCache ports.DistanceCache,
) (*ORSDistanceProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = defaultORSBaseURL
	}
	if profile == "" {
		profile = "driving-car"
	}

	provider := &ORSDistanceProvider{
		session:       &http.Client{Timeout: 10 * time.Second},
		apiKey:        apiKey,
		baseURL:       strings.TrimRight(baseURL, "/"),
		profile:       profile,
		backoff:       200 * time.Millisecond,
		distanceCache: distanceCache,
	}

	return provider, nil
}

// Delegate to batched path to reuse caching and matrix logic.
func (o *ORSDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	results, err := o.GetDistances(ctx, origin, []domain.Coordinates{destination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf(
			"get distances %s -> %s: %w",
			origin.Key(), destination.Key(), err,
		)
	}

	result, ok := results[destination.Key()]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %s -> %s", origin.Key(), destination.Key())
	}

	return result, nil
}

// Compute distances from a single origin to many destinations.
func (o *ORSDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("ORS origin: %w", err)
	}

	out := make(map[string]ports.DistanceResult, len(destinations))

	seen := make(map[string]struct{}, len(destinations))
	destList := make([]domain.Coordinates, 0, len(destinations))
	for _, d := range destinations {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("ORS destination: %w", err)
		}
		k := d.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}

		// Same point: no need to ask the routing engine.
		if k == origin.Key() {
			out[k] = ports.DistanceResult{}
			continue
		}
		destList = append(destList, d)
	}

	if len(destList) == 0 {
		return out, nil
	}

	hits := map[string]ports.DistanceResult{}
	// Check persistent distance cache before issuing external API calls.
	if o.distanceCache != nil {
		cached, cerr := o.distanceCache.GetMany(ctx, origin, destList)
		if cerr != nil {
			zap.L().Warn("distance cache read failed", zap.Error(cerr))
		} else {
			hits = cached
		}
	}

	misses := make([]domain.Coordinates, 0, len(destList))
	for _, d := range destList {
		if r, ok := hits[d.Key()]; ok {
			out[d.Key()] = r
			continue
		}
		misses = append(misses, d)
	}

	if len(misses) == 0 {
		return out, nil
	}

	// Fetch a single origin->many matrix row for all cache misses.
	fetched, err := o.fetchMatrixRow(ctx, origin, misses)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	if o.distanceCache != nil {
		if err := o.distanceCache.PutMany(ctx, origin, fetched); err != nil {
			zap.L().Warn("distance cache write failed", zap.Error(err))
		}
	}

	for k, v := range fetched {
		out[k] = v
	}

	return out, nil
}
