package dto

import "time"

type CreateMatchRequest struct {
	DonationID int `json:"donation_id"`
	RequestID  int `json:"request_id"`
}

type AssignVehicleRequest struct {
	VehicleID int `json:"vehicle_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ExplanationResponse struct {
	FoodCompatibility float64 `json:"food_compatibility"`
	QuantityFit       float64 `json:"quantity_fit"`
	DistanceScore     float64 `json:"distance_score"`
	FreshnessScore    float64 `json:"freshness_score"`
	DistanceKm        float64 `json:"distance_km"`
}

type MatchResponse struct {
	MatchID     int                 `json:"match_id"`
	DonationID  int                 `json:"donation_id"`
	RequestID   int                 `json:"request_id"`
	Score       float64             `json:"score"`
	Explanation ExplanationResponse `json:"explanation"`
	Reason      string              `json:"reason"`
	VehicleID   *int                `json:"vehicle_id"`
	Route       *RouteResponse      `json:"route"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
}

type ListMatchesResponse struct {
	Matches []MatchResponse `json:"matches"`
}
