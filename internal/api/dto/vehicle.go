package dto

type VehicleResponse struct {
	VehicleID     int    `json:"vehicle_id"`
	Name          string `json:"name"`
	CapacityMeals int    `json:"capacity_meals"`
	BaseLocation  Point  `json:"base_location"`
	IsAvailable   bool   `json:"is_available"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}
