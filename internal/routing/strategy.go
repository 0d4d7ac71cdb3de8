// Package routing orders a vehicle's stops into a route.
package routing

import (
	"fmt"
	"strings"

	"food-match-service/internal/domain"
	"food-match-service/internal/geo"
)

const (
	GreedyStrategyName = "greedy-nearest-neighbor"
	TwoOptStrategyName = "two-opt"
)

// Strategy turns a start point and a set of stops into a visiting order.
//
// Implementations must return a permutation of stops (nothing dropped or
// duplicated) and must be pure: no I/O, no state kept between calls.
type Strategy interface {
	Name() string
	Plan(start domain.GeoPoint, stops []domain.GeoPoint) domain.RoutePlan
}

// NewStrategy resolves a strategy by name. An empty name selects the greedy heuristic.
func NewStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", GreedyStrategyName:
		return GreedyNearestNeighbor{}, nil
	case TwoOptStrategyName:
		return TwoOpt{}, nil
	}
	return nil, fmt.Errorf("new routing strategy: unknown strategy %q", name)
}

// PathDistance sums the leg distances start -> order[0] -> ... -> order[n-1].
func PathDistance(start domain.GeoPoint, order []domain.GeoPoint) float64 {
	total := 0.0
	current := start
	for _, p := range order {
		total += geo.Distance(current, p)
		current = p
	}
	return total
}
