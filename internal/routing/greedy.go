package routing

import (
	"slices"

	"food-match-service/internal/domain"
	"food-match-service/internal/geo"
)

// GreedyNearestNeighbor plans a route by always travelling to the closest
// remaining stop.
//
// It does not backtrack and has no return leg, so it is an approximation, not a
// shortest-route solver. With two stops it is optimal: only the first leg can
// differ between the two orderings.
type GreedyNearestNeighbor struct{}

func (GreedyNearestNeighbor) Name() string { return GreedyStrategyName }

func (g GreedyNearestNeighbor) Plan(start domain.GeoPoint, stops []domain.GeoPoint) domain.RoutePlan {
	order, total := nearestNeighbor(start, stops)
	return domain.RoutePlan{
		Strategy:        g.Name(),
		VisitingOrder:   order,
		TotalDistanceKm: total,
	}
}

func nearestNeighbor(start domain.GeoPoint, stops []domain.GeoPoint) ([]domain.GeoPoint, float64) {
	remaining := slices.Clone(stops)
	order := make([]domain.GeoPoint, 0, len(stops))

	current := start
	total := 0.0

	for len(remaining) > 0 {
		best := 0
		minDist := geo.Distance(current, remaining[0])

		// Strict comparison: on equal distances the earliest stop in input order wins.
		for i := 1; i < len(remaining); i++ {
			if d := geo.Distance(current, remaining[i]); d < minDist {
				best = i
				minDist = d
			}
		}

		total += minDist
		current = remaining[best]
		order = append(order, current)
		remaining = slices.Delete(remaining, best, best+1)
	}

	return order, total
}
