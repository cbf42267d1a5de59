package ports

import (
	"context"

	"roadside-dispatch-service/internal/domain"
)

// Persistent cache of origin -> destination distance results.
// Results are keyed by the destination's Coordinates.Key(); misses are simply absent.
type DistanceCache interface {
	GetMany(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) (map[string]DistanceResult, error)
	PutMany(ctx context.Context, origin domain.Coordinates, results map[string]DistanceResult) error
}
