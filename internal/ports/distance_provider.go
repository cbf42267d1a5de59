package ports

import (
	"context"

	"roadside-dispatch-service/internal/domain"
)

// Distance and travel duration between two locations.
type DistanceResult struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationSeconds int     `json:"duration_seconds"`
}

// Contract for retrieving travel distance and duration between locations.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two locations.
	GetDistance(ctx context.Context, origin domain.Coordinates, destination domain.Coordinates) (DistanceResult, error)
}
