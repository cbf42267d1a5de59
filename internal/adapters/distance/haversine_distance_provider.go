package distance

import (
	"context"
	"math"

	"roadside-dispatch-service/internal/domain"
	"roadside-dispatch-service/internal/ports"
)

const earthRadiusKm = 6371.0

// HaversineDistanceProvider computes great-circle distances without any I/O.
// DurationSeconds is estimated from AvgSpeedKmh when it is positive.
type HaversineDistanceProvider struct {
	AvgSpeedKmh float64
}

func NewHaversineDistanceProvider(avgSpeedKmh float64) *HaversineDistanceProvider {
	return &HaversineDistanceProvider{AvgSpeedKmh: avgSpeedKmh}
}

func (h *HaversineDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceResult{}, err
	}
	return h.result(Haversine(origin, destination)), nil
}

func (h *HaversineDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (map[string]ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		out[d.Key()] = h.result(Haversine(origin, d))
	}
	return out, nil
}

func (h *HaversineDistanceProvider) result(km float64) ports.DistanceResult {
	r := ports.DistanceResult{DistanceKm: km}
	if h.AvgSpeedKmh > 0 {
		r.DurationSeconds = int(math.Round(km / h.AvgSpeedKmh * 3600))
	}
	return r
}

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
}
