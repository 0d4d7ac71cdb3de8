package matching

import (
	"errors"
	"fmt"
)

// Weights of the linear blend. They do not have to sum to 1, but the
// defaults do, which keeps the final score within [0, 1].
type Weights struct {
	Food      float64 // dietary compatibility
	Quantity  float64 // how much of the need the donation covers
	Distance  float64 // proximity of donor and recipient
	Freshness float64 // time left before the donation expires
}

// Config is an immutable scoring configuration. Engines copy it on construction,
// so several configurations (e.g. per region) can coexist.
type Config struct {
	Weights Weights

	// Food compatibility when a non-veg donation meets a veg-only request.
	FoodMismatchScore float64

	// Distance at which the distance score reaches 0.
	DistanceFalloffKm float64

	// Constant freshness term. Expiry windows are not modelled yet.
	FreshnessScore float64
}

func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Food:      0.4,
			Quantity:  0.3,
			Distance:  0.2,
			Freshness: 0.1,
		},
		FoodMismatchScore: 0.3,
		DistanceFalloffKm: 10.0,
		FreshnessScore:    1.0,
	}
}

func (c Config) Validate() error {
	w := c.Weights
	if w.Food < 0 || w.Quantity < 0 || w.Distance < 0 || w.Freshness < 0 {
		return errors.New("matching config: weights must be non-negative")
	}
	if w.Food+w.Quantity+w.Distance+w.Freshness == 0 {
		return errors.New("matching config: at least one weight must be positive")
	}
	if c.DistanceFalloffKm <= 0 {
		return fmt.Errorf("matching config: distance falloff must be positive, got %v", c.DistanceFalloffKm)
	}
	if c.FoodMismatchScore < 0 || c.FoodMismatchScore > 1 {
		return fmt.Errorf("matching config: food mismatch score must be within [0,1], got %v", c.FoodMismatchScore)
	}
	if c.FreshnessScore < 0 || c.FreshnessScore > 1 {
		return fmt.Errorf("matching config: freshness score must be within [0,1], got %v", c.FreshnessScore)
	}
	return nil
}
