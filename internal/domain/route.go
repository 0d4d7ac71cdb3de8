package domain

// Represents the planned visiting order for a single vehicle.
// A RoutePlan is the output of a routing strategy: the stops it was given,
// permuted into visiting order, and the summed leg distance starting from the
// vehicle's start point. There is no return leg.
// It is immutable planning data and contains no side effects.
type RoutePlan struct {
	Strategy        string
	VisitingOrder   []GeoPoint
	TotalDistanceKm float64
}
