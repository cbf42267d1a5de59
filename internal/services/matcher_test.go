package services

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadside-dispatch-service/internal/domain"
)

func provider(id string, km, rating float64, a domain.Availability, load, capacity int) domain.Provider {
	return domain.Provider{
		ID:           id,
		DistanceKm:   km,
		Rating:       rating,
		Availability: a,
		CurrentLoad:  load,
		MaxCapacity:  capacity,
	}
}

func ids(ps []domain.Provider) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestRankAndScoreAvailabilityBeatsDistance(t *testing.T) {
	a := provider("A", 1.5, 4.8, domain.Available, 1, 4)
	b := provider("B", 1.0, 4.2, domain.Busy, 0, 3)

	results, err := RankAndScore([]domain.Provider{b, a}, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "A", results[0].Provider.ID)
	assert.Equal(t, "B", results[1].Provider.ID)

	// 30 + 48 + 25 + round(11.25) = 114, clamped.
	assert.Equal(t, 100, results[0].Score)
	assert.True(t, results[0].IsRecommended)

	// 30 + 42 + 15 + 15 = 102, clamped.
	assert.Equal(t, 100, results[1].Score)
	assert.True(t, results[1].IsRecommended)
}

func TestFindCandidatesOrdering(t *testing.T) {
	in := []domain.Provider{
		provider("offline-near", 0.5, 5, domain.Offline, 0, 1),
		provider("busy-far", 4, 3, domain.Busy, 0, 1),
		provider("avail-far", 4.5, 4, domain.Available, 0, 1),
		provider("avail-near-low", 1, 3.5, domain.Available, 0, 1),
		provider("avail-near-high", 1, 4.9, domain.Available, 0, 1),
		provider("busy-near", 0.2, 2, domain.Busy, 0, 1),
		provider("out-of-range", 9, 5, domain.Available, 0, 1),
	}

	got, err := FindCandidates(in, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"avail-near-high",
		"avail-near-low",
		"avail-far",
		"busy-near",
		"busy-far",
		"offline-near",
	}, ids(got))
}

func TestFindCandidatesStable(t *testing.T) {
	in := []domain.Provider{
		provider("first", 2, 4, domain.Busy, 0, 2),
		provider("second", 2, 4, domain.Busy, 1, 2),
		provider("third", 2, 4, domain.Busy, 2, 2),
	}

	got, err := FindCandidates(in, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, ids(got))
}

func TestFindCandidatesRadiusBoundaries(t *testing.T) {
	in := []domain.Provider{
		provider("zero", 0, 4, domain.Available, 0, 1),
		provider("edge", 3, 4, domain.Available, 0, 1),
	}

	tests := []struct {
		name   string
		radius float64
		want   []string
	}{
		{"inclusive edge", 3, []string{"zero", "edge"}},
		{"zero radius keeps zero distance", 0, []string{"zero"}},
		{"negative radius", -1, []string{}},
		{"nan radius", math.NaN(), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindCandidates(in, tt.radius)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRankAndScoreEmpty(t *testing.T) {
	got, err := RankAndScore(nil, 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestComputeScoreTerms(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Provider
		want int
	}{
		// 20 + 40 + 15 + 0 = 75
		{"mid band busy full", provider("p", 3, 4.0, domain.Busy, 2, 2), 75},
		// 10 + 35 + 0 + 7.5 = 52.5 -> 53
		{"far offline half free", provider("p", 8, 3.5, domain.Offline, 1, 2), 53},
		// 30 + 0 + 25 + 15 = 70
		{"unrated near empty", provider("p", 2, 0, domain.Available, 0, 5), 70},
		// 10 + 0 + 0 + (-30) = -20 -> 0
		{"overloaded clamps to zero", provider("p", 12, 0, domain.Offline, 3, 1), 0},
		// 20 + 46 + 15 + 5 = 86
		{"recommended threshold", provider("p", 4.9, 4.6, domain.Busy, 2, 3), 86},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeScore(tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeScoreInvalid(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Provider
	}{
		{"zero capacity", provider("p", 1, 4, domain.Available, 0, 0)},
		{"negative distance", provider("p", -1, 4, domain.Available, 0, 1)},
		{"rating above five", provider("p", 1, 5.1, domain.Available, 0, 1)},
		{"negative rating", provider("p", 1, -0.1, domain.Available, 0, 1)},
		{"unknown availability", provider("p", 1, 4, "sleeping", 0, 1)},
		{"negative load", provider("p", 1, 4, domain.Available, -1, 1)},
		{"missing id", provider("", 1, 4, domain.Available, 0, 1)},
		{"nan distance", provider("p", math.NaN(), 4, domain.Available, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeScore(tt.p)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)

			_, err = RankAndScore([]domain.Provider{tt.p}, 100)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func randomProvider(r *rand.Rand, id string) domain.Provider {
	states := []domain.Availability{domain.Available, domain.Busy, domain.Offline}
	capacity := 1 + r.Intn(6)
	return provider(
		id,
		r.Float64()*12,
		math.Round(r.Float64()*50)/10,
		states[r.Intn(len(states))],
		r.Intn(capacity+1),
		capacity,
	)
}

func TestMatcherProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		n := r.Intn(12)
		ps := make([]domain.Provider, 0, n)
		for j := 0; j < n; j++ {
			ps = append(ps, randomProvider(r, string(rune('a'+j))))
		}
		radius := r.Float64() * 10

		results, err := RankAndScore(ps, radius)
		require.NoError(t, err)

		for k, res := range results {
			assert.LessOrEqual(t, res.Provider.DistanceKm, radius)
			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
			assert.Equal(t, res.Score >= 85, res.IsRecommended)

			if k > 0 {
				prev := results[k-1].Provider
				cur := res.Provider
				assert.LessOrEqual(t, prev.Availability.Rank(), cur.Availability.Rank())
				if prev.Availability == cur.Availability {
					assert.LessOrEqual(t, prev.DistanceKm, cur.DistanceKm)
					if prev.DistanceKm == cur.DistanceKm {
						assert.GreaterOrEqual(t, prev.Rating, cur.Rating)
					}
				}
			}
		}
	}
}

func TestComputeScoreMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 300; i++ {
		base := randomProvider(r, "p")

		lower := base
		higher := base
		lower.Rating = math.Round(r.Float64()*25) / 10
		higher.Rating = lower.Rating + math.Round(r.Float64()*25)/10
		sLow, err := ComputeScore(lower)
		require.NoError(t, err)
		sHigh, err := ComputeScore(higher)
		require.NoError(t, err)
		assert.LessOrEqual(t, sLow, sHigh, "score must not drop as rating rises")

		near := base
		far := base
		near.DistanceKm = r.Float64() * 6
		far.DistanceKm = near.DistanceKm + r.Float64()*6
		sNear, err := ComputeScore(near)
		require.NoError(t, err)
		sFar, err := ComputeScore(far)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sNear, sFar, "score must not rise with distance")
	}
}
