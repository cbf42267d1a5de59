package distance

import (
	"context"
	"fmt"

	"roadside-dispatch-service/internal/domain"
	"roadside-dispatch-service/internal/ports"
)

type MockPair struct {
	From, To domain.Coordinates
	Km       float64
	Seconds  int
}

// MockDistanceProvider serves a fixed distance table. It deliberately does not
// implement DistanceMatrixProvider so callers exercise the single-lookup path.
type MockDistanceProvider struct {
	m map[string]ports.DistanceResult
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[p.From.Key()+"|"+p.To.Key()] = ports.DistanceResult{DistanceKm: p.Km, DurationSeconds: p.Seconds}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	r, ok := p.m[origin.Key()+"|"+destination.Key()]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q", origin.Key(), destination.Key())
	}

	return r, nil
}
