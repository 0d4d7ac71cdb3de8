package handlers

import (
	"food-match-service/internal/api/dto"
	"food-match-service/internal/domain"
)

func toPoint(p domain.GeoPoint) dto.Point {
	return dto.Point{Lat: p.Lat, Lon: p.Lon}
}

func fromPoint(p dto.Point) domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

func toExplanation(e domain.ScoreExplanation) dto.ExplanationResponse {
	return dto.ExplanationResponse{
		FoodCompatibility: e.FoodCompatibility,
		QuantityFit:       e.QuantityFit,
		DistanceScore:     e.DistanceScore,
		FreshnessScore:    e.FreshnessScore,
		DistanceKm:        e.DistanceKm,
	}
}

func toScore(s domain.MatchScore) dto.ScoreResponse {
	return dto.ScoreResponse{
		Score:       s.Score,
		Explanation: toExplanation(s.Explanation),
		Reason:      s.Explanation.String(),
	}
}

func toRoute(p domain.RoutePlan) dto.RouteResponse {
	order := make([]dto.Point, 0, len(p.VisitingOrder))
	for _, pt := range p.VisitingOrder {
		order = append(order, toPoint(pt))
	}
	return dto.RouteResponse{
		Strategy:        p.Strategy,
		VisitingOrder:   order,
		TotalDistanceKm: p.TotalDistanceKm,
	}
}

func toMatch(m *domain.Match) dto.MatchResponse {
	res := dto.MatchResponse{
		MatchID:     m.MatchID,
		DonationID:  m.DonationID,
		RequestID:   m.RequestID,
		Score:       m.Score,
		Explanation: toExplanation(m.Explanation),
		Reason:      m.Explanation.String(),
		VehicleID:   m.VehicleID,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
	}
	if m.Route != nil {
		route := toRoute(*m.Route)
		res.Route = &route
	}
	return res
}

func toVehicle(v *domain.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		VehicleID:     v.VehicleID,
		Name:          v.Name,
		CapacityMeals: v.CapacityMeals,
		BaseLocation:  toPoint(v.BaseLocation),
		IsAvailable:   v.IsAvailable,
	}
}
