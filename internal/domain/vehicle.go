package domain

// Delivery vehicle that starts every route from its base location.
type Vehicle struct {
	VehicleID     int
	Name          string
	CapacityMeals int
	BaseLocation  GeoPoint
	IsAvailable   bool
}

// CanCarry reports whether the vehicle capacity covers the given number of meals.
// Route planning never enforces this; callers may use it to warn.
func (v *Vehicle) CanCarry(meals int) bool {
	return meals <= v.CapacityMeals
}
