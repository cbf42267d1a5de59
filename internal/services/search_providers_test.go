package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadside-dispatch-service/internal/adapters/distance"
	"roadside-dispatch-service/internal/domain"
)

var origin = domain.Coordinates{Lat: 12.9716, Lon: 77.5946}

func located(id string, lat, lon, rating float64, a domain.Availability, services ...string) domain.Provider {
	return domain.Provider{
		ID:           id,
		Location:     domain.Coordinates{Lat: lat, Lon: lon},
		Rating:       rating,
		Availability: a,
		MaxCapacity:  3,
		Services:     services,
	}
}

func directory() *fakeRepo {
	return &fakeRepo{providers: []domain.Provider{
		// ~1.1 km north
		located("near-busy", 12.9816, 77.5946, 4.9, domain.Busy, "flat_tyre"),
		// ~3.3 km north
		located("mid-available", 13.0016, 77.5946, 4.1, domain.Available, "flat_tyre", "towing"),
		// ~11 km north
		located("far-available", 13.0716, 77.5946, 4.7, domain.Available, "towing"),
	}}
}

func TestSearchProvidersHaversine(t *testing.T) {
	res, err := SearchProviders(context.Background(), domain.SearchRequest{
		Origin:   origin,
		RadiusKm: 5,
	}, directory(), distance.NewHaversineDistanceProvider(0))
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.RadiusKm)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "mid-available", res.Matches[0].Provider.ID)
	assert.Equal(t, "near-busy", res.Matches[1].Provider.ID)
	assert.InDelta(t, 3.34, res.Matches[0].Provider.DistanceKm, 0.05)
	assert.InDelta(t, 1.11, res.Matches[1].Provider.DistanceKm, 0.05)
}

func TestSearchProvidersServiceFilter(t *testing.T) {
	res, err := SearchProviders(context.Background(), domain.SearchRequest{
		Origin:      origin,
		RadiusKm:    20,
		ServiceType: "towing",
	}, directory(), distance.NewHaversineDistanceProvider(0))
	require.NoError(t, err)

	got := make([]string, 0, len(res.Matches))
	for _, m := range res.Matches {
		got = append(got, m.Provider.ID)
	}
	assert.Equal(t, []string{"mid-available", "far-available"}, got)
}

func TestSearchProvidersExpandsRadius(t *testing.T) {
	repo := &fakeRepo{providers: []domain.Provider{
		located("far-available", 13.0716, 77.5946, 4.7, domain.Available),
	}}

	res, err := SearchProviders(context.Background(), domain.SearchRequest{
		Origin:      origin,
		RadiusKm:    2,
		MaxRadiusKm: 20,
	}, repo, distance.NewHaversineDistanceProvider(0))
	require.NoError(t, err)

	// 2 -> 4 -> 8 -> 16 km.
	assert.Equal(t, 16.0, res.RadiusKm)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "far-available", res.Matches[0].Provider.ID)
}

func TestSearchProvidersExpansionCapped(t *testing.T) {
	repo := &fakeRepo{providers: []domain.Provider{
		located("far-available", 13.0716, 77.5946, 4.7, domain.Available),
	}}

	res, err := SearchProviders(context.Background(), domain.SearchRequest{
		Origin:      origin,
		RadiusKm:    2,
		MaxRadiusKm: 6,
	}, repo, distance.NewHaversineDistanceProvider(0))
	require.NoError(t, err)

	assert.Equal(t, 6.0, res.RadiusKm)
	assert.Empty(t, res.Matches)
}

func TestSearchProvidersSingleLookupPath(t *testing.T) {
	repo := directory()
	var pairs []distance.MockPair
	for i, p := range repo.providers {
		pairs = append(pairs, distance.MockPair{From: origin, To: p.Location, Km: float64(i + 1)})
	}

	res, err := SearchProviders(context.Background(), domain.SearchRequest{
		Origin:   origin,
		RadiusKm: 2,
	}, repo, distance.NewMockDistanceProvider(pairs))
	require.NoError(t, err)

	require.Len(t, res.Matches, 2)
	assert.Equal(t, "mid-available", res.Matches[0].Provider.ID)
	assert.Equal(t, 2.0, res.Matches[0].Provider.DistanceKm)
	assert.Equal(t, "near-busy", res.Matches[1].Provider.ID)
}

func TestSearchProvidersDistanceFailure(t *testing.T) {
	_, err := SearchProviders(context.Background(), domain.SearchRequest{
		Origin:   origin,
		RadiusKm: 5,
	}, directory(), distance.NewMockDistanceProvider(nil))
	assert.ErrorContains(t, err, "missing pair")
}

func TestSearchProvidersRepositoryFailure(t *testing.T) {
	_, err := SearchProviders(context.Background(), domain.SearchRequest{
		Origin:   origin,
		RadiusKm: 5,
	}, &fakeRepo{listErr: errBoom}, distance.NewHaversineDistanceProvider(0))
	assert.ErrorIs(t, err, errBoom)
}

func TestSearchProvidersInvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  domain.SearchRequest
	}{
		{"zero radius", domain.SearchRequest{Origin: origin}},
		{"negative radius", domain.SearchRequest{Origin: origin, RadiusKm: -3}},
		{"max below radius", domain.SearchRequest{Origin: origin, RadiusKm: 5, MaxRadiusKm: 3}},
		{"bad origin", domain.SearchRequest{Origin: domain.Coordinates{Lat: 100}, RadiusKm: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SearchProviders(context.Background(), tt.req, directory(), distance.NewHaversineDistanceProvider(0))
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestSearchProvidersEmptyDirectory(t *testing.T) {
	res, err := SearchProviders(context.Background(), domain.SearchRequest{
		Origin:   origin,
		RadiusKm: 5,
	}, &fakeRepo{}, distance.NewHaversineDistanceProvider(0))
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
}
