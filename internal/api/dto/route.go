package dto

// RouteRequest plans from Start or from the base of VehicleID; exactly one must be set.
type RouteRequest struct {
	Start     *Point  `json:"start"`
	VehicleID *int    `json:"vehicle_id"`
	Stops     []Point `json:"stops"`
}

type RouteResponse struct {
	Strategy        string  `json:"strategy"`
	VisitingOrder   []Point `json:"visiting_order"`
	TotalDistanceKm float64 `json:"total_distance_km"`
}
