package routing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-match-service/internal/domain"
)

func TestTwoOptImprovesOnGreedy(t *testing.T) {
	start := domain.GeoPoint{}
	stops := []domain.GeoPoint{
		{Lat: 0.034, Lon: -0.007},
		{Lat: 0.026, Lon: -0.05},
		{Lat: -0.005, Lon: 0.022},
		{Lat: -0.027, Lon: 0.045},
		{Lat: 0.04, Lon: -0.047},
	}

	greedy := GreedyNearestNeighbor{}.Plan(start, stops)
	improved := TwoOpt{}.Plan(start, stops)

	assert.InDelta(t, 21.050, greedy.TotalDistanceKm, 1e-3)
	assert.InDelta(t, 20.868, improved.TotalDistanceKm, 1e-3)
	assert.Equal(t, []domain.GeoPoint{
		{Lat: -0.027, Lon: 0.045},
		{Lat: -0.005, Lon: 0.022},
		{Lat: 0.034, Lon: -0.007},
		{Lat: 0.04, Lon: -0.047},
		{Lat: 0.026, Lon: -0.05},
	}, improved.VisitingOrder)
	assert.Equal(t, TwoOptStrategyName, improved.Strategy)
}

func TestTwoOptNeverWorseThanGreedy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 100; round++ {
		start := randomPoint(rng)
		stops := make([]domain.GeoPoint, 2+rng.Intn(8))
		for i := range stops {
			stops[i] = randomPoint(rng)
		}

		greedy := GreedyNearestNeighbor{}.Plan(start, stops)
		improved := TwoOpt{MaxPasses: 10}.Plan(start, stops)
		assert.LessOrEqual(t, improved.TotalDistanceKm, greedy.TotalDistanceKm+1e-9)
	}
}

func TestTwoOptSmallInputs(t *testing.T) {
	plan := TwoOpt{}.Plan(vehicleBase, nil)
	assert.Empty(t, plan.VisitingOrder)
	assert.Equal(t, 0.0, plan.TotalDistanceKm)

	plan = TwoOpt{}.Plan(vehicleBase, []domain.GeoPoint{requestPoint})
	require.Len(t, plan.VisitingOrder, 1)
	assert.Equal(t, requestPoint, plan.VisitingOrder[0])
}
