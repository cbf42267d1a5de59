package distance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadside-dispatch-service/internal/domain"
)

func TestHaversine(t *testing.T) {
	mgRoad := domain.Coordinates{Lat: 12.9716, Lon: 77.5946}
	indiranagar := domain.Coordinates{Lat: 12.9784, Lon: 77.6408}

	d := Haversine(mgRoad, indiranagar)
	assert.InDelta(t, 5.07, d, 0.05)

	assert.Equal(t, 0.0, Haversine(mgRoad, mgRoad))
	assert.InDelta(t, Haversine(indiranagar, mgRoad), d, 1e-9, "distance is symmetric")

	// A quarter of the equator.
	assert.InDelta(t, 10007.5, Haversine(domain.Coordinates{}, domain.Coordinates{Lon: 90}), 1)
}

func TestHaversineDistanceProviderMatrix(t *testing.T) {
	p := NewHaversineDistanceProvider(30)
	origin := domain.Coordinates{Lat: 12.9716, Lon: 77.5946}
	dests := []domain.Coordinates{
		{Lat: 12.9784, Lon: 77.6408},
		origin,
	}

	got, err := p.GetDistances(context.Background(), origin, dests)
	require.NoError(t, err)
	require.Len(t, got, 2)

	far := got[dests[0].Key()]
	assert.InDelta(t, 5.07, far.DistanceKm, 0.05)
	// 5.07 km at 30 km/h is roughly ten minutes.
	assert.InDelta(t, 608, far.DurationSeconds, 10)

	assert.Zero(t, got[origin.Key()].DistanceKm)

	single, err := p.GetDistance(context.Background(), origin, dests[0])
	require.NoError(t, err)
	assert.Equal(t, far, single)
}

func TestHaversineDistanceProviderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHaversineDistanceProvider(0).GetDistance(ctx, domain.Coordinates{}, domain.Coordinates{})
	assert.ErrorIs(t, err, context.Canceled)
}
