package routing

import (
	"slices"

	"food-match-service/internal/domain"
	"food-match-service/internal/geo"
)

const defaultTwoOptPasses = 50

// improvements smaller than this are treated as float noise
const twoOptEpsilon = 1e-9

// TwoOpt starts from the greedy order and reverses segments of the open path
// while that strictly shortens it. The start point stays fixed and there is no
// return leg, so the result is never longer than the greedy route.
type TwoOpt struct {
	// Upper bound on improvement sweeps; 0 means the default.
	MaxPasses int
}

func (TwoOpt) Name() string { return TwoOptStrategyName }

func (t TwoOpt) Plan(start domain.GeoPoint, stops []domain.GeoPoint) domain.RoutePlan {
	order, _ := nearestNeighbor(start, stops)

	passes := t.MaxPasses
	if passes <= 0 {
		passes = defaultTwoOptPasses
	}

	for pass := 0; pass < passes; pass++ {
		if !improveOnce(start, order) {
			break
		}
	}

	return domain.RoutePlan{
		Strategy:        t.Name(),
		VisitingOrder:   order,
		TotalDistanceKm: PathDistance(start, order),
	}
}

// improveOnce applies every improving reversal found in one sweep and reports
// whether any was applied. path index 0 is the fixed start.
func improveOnce(start domain.GeoPoint, order []domain.GeoPoint) bool {
	n := len(order)
	if n < 2 {
		return false
	}

	at := func(i int) domain.GeoPoint {
		if i == 0 {
			return start
		}
		return order[i-1]
	}

	improved := false
	for i := 1; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			before := geo.Distance(at(i-1), at(i))
			after := geo.Distance(at(i-1), at(j))
			if j < n {
				before += geo.Distance(at(j), at(j+1))
				after += geo.Distance(at(i), at(j+1))
			}

			if after < before-twoOptEpsilon {
				slices.Reverse(order[i-1 : j])
				improved = true
			}
		}
	}
	return improved
}
