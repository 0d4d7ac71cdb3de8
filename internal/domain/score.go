package domain

import "fmt"

// ScoreExplanation is the auditable basis for a MatchScore.
// Sub-scores are rounded to 2 decimals, DistanceKm to 1 decimal.
type ScoreExplanation struct {
	FoodCompatibility float64
	QuantityFit       float64
	DistanceScore     float64
	FreshnessScore    float64
	DistanceKm        float64
}

func (e ScoreExplanation) String() string {
	return fmt.Sprintf("food=%.2f, qty=%.2f, dist=%.1fkm", e.FoodCompatibility, e.QuantityFit, e.DistanceKm)
}

// Compatibility score between one donation and one request.
// It is produced fresh on every scoring call and has no lifecycle of its own.
type MatchScore struct {
	Score       float64
	Explanation ScoreExplanation
}
