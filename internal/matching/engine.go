// Package matching scores how well a donation fits a request.
package matching

import (
	"fmt"
	"math"

	"food-match-service/internal/domain"
	"food-match-service/internal/geo"
)

// Engine computes compatibility scores. It holds only its immutable
// configuration and is safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new matching engine: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

func (e *Engine) Config() Config { return e.cfg }

// Score blends four sub-scores into a compatibility score for the pair.
//
// This is a scoring function, not a decision: it applies no threshold and
// never changes the donation or request.
func (e *Engine) Score(d domain.Donation, r domain.Request) domain.MatchScore {
	food := e.foodCompatibility(d, r)
	qty := quantityFit(d, r)
	distKm := geo.Distance(d.Location, r.Location)
	dist := e.distanceScore(distKm)
	fresh := e.cfg.FreshnessScore

	w := e.cfg.Weights
	score := w.Food*food + w.Quantity*qty + w.Distance*dist + w.Freshness*fresh

	return domain.MatchScore{
		Score: score,
		Explanation: domain.ScoreExplanation{
			FoodCompatibility: round(food, 2),
			QuantityFit:       round(qty, 2),
			DistanceScore:     round(dist, 2),
			FreshnessScore:    round(fresh, 2),
			DistanceKm:        round(distKm, 1),
		},
	}
}

func (e *Engine) foodCompatibility(d domain.Donation, r domain.Request) float64 {
	if d.IsVeg || !r.PrefersVeg {
		return 1.0
	}
	return e.cfg.FoodMismatchScore
}

// A need of 0 is floored to 1 so the ratio is always defined.
func quantityFit(d domain.Donation, r domain.Request) float64 {
	need := max(1, r.NeedMeals)
	return math.Min(1.0, float64(d.QuantityMeals)/float64(need))
}

func (e *Engine) distanceScore(km float64) float64 {
	return math.Max(0.0, 1.0-km/e.cfg.DistanceFalloffKm)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
