package routing

import (
	"fmt"

	"food-match-service/internal/domain"
)

// Config selects the routing strategy by name.
type Config struct {
	Strategy string
}

func DefaultConfig() Config {
	return Config{Strategy: GreedyStrategyName}
}

// Engine plans routes with a fixed strategy. It keeps no state between calls
// and is safe for concurrent use.
type Engine struct {
	strategy Strategy
}

func NewEngine(cfg Config) (*Engine, error) {
	s, err := NewStrategy(cfg.Strategy)
	if err != nil {
		return nil, fmt.Errorf("new routing engine: %w", err)
	}
	return &Engine{strategy: s}, nil
}

// NewEngineWithStrategy wraps a caller-supplied strategy.
func NewEngineWithStrategy(s Strategy) *Engine {
	return &Engine{strategy: s}
}

func (e *Engine) StrategyName() string { return e.strategy.Name() }

// PlanRoute orders stops starting from start. An empty stop set yields an
// empty order and zero distance.
func (e *Engine) PlanRoute(start domain.GeoPoint, stops []domain.GeoPoint) domain.RoutePlan {
	return e.strategy.Plan(start, stops)
}
