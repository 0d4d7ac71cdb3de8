package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"food-match-service/internal/domain"
)

// Persisted route shape: {"strategy": ..., "order": [[lat, lon], ...], "km": total}.
type routeRecord struct {
	Strategy string       `json:"strategy,omitempty"`
	Order    [][2]float64 `json:"order"`
	Km       float64      `json:"km"`
}

type explanationRecord struct {
	Food          float64 `json:"food"`
	Quantity      float64 `json:"qty"`
	DistanceScore float64 `json:"dist_score"`
	Freshness     float64 `json:"freshness"`
	DistanceKm    float64 `json:"dist_km"`
}

func encodeRoute(p *domain.RoutePlan) (sql.NullString, error) {
	if p == nil {
		return sql.NullString{}, nil
	}

	rec := routeRecord{
		Strategy: p.Strategy,
		Order:    make([][2]float64, 0, len(p.VisitingOrder)),
		Km:       p.TotalDistanceKm,
	}
	for _, pt := range p.VisitingOrder {
		rec.Order = append(rec.Order, pt.Pair())
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode route: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeRoute(s sql.NullString) (*domain.RoutePlan, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}

	var rec routeRecord
	if err := json.Unmarshal([]byte(s.String), &rec); err != nil {
		return nil, fmt.Errorf("decode route: %w", err)
	}

	plan := &domain.RoutePlan{
		Strategy:        rec.Strategy,
		VisitingOrder:   make([]domain.GeoPoint, 0, len(rec.Order)),
		TotalDistanceKm: rec.Km,
	}
	for _, p := range rec.Order {
		plan.VisitingOrder = append(plan.VisitingOrder, domain.GeoPoint{Lat: p[0], Lon: p[1]})
	}
	return plan, nil
}

func encodeExplanation(e domain.ScoreExplanation) (string, error) {
	b, err := json.Marshal(explanationRecord{
		Food:          e.FoodCompatibility,
		Quantity:      e.QuantityFit,
		DistanceScore: e.DistanceScore,
		Freshness:     e.FreshnessScore,
		DistanceKm:    e.DistanceKm,
	})
	if err != nil {
		return "", fmt.Errorf("encode explanation: %w", err)
	}
	return string(b), nil
}

func decodeExplanation(s string) (domain.ScoreExplanation, error) {
	var rec explanationRecord
	if s != "" {
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return domain.ScoreExplanation{}, fmt.Errorf("decode explanation: %w", err)
		}
	}
	return domain.ScoreExplanation{
		FoodCompatibility: rec.Food,
		QuantityFit:       rec.Quantity,
		DistanceScore:     rec.DistanceScore,
		FreshnessScore:    rec.Freshness,
		DistanceKm:        rec.DistanceKm,
	}, nil
}
