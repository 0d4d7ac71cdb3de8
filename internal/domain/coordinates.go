package domain

import "fmt"

// Immutable geographic point in decimal degrees (WGS-84).
// Values are not range-checked; callers hand in already validated coordinates.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Return the point as [lat, lon], the order used by persisted route data.
func (p GeoPoint) Pair() [2]float64 { return [2]float64{p.Lat, p.Lon} }

func (p GeoPoint) String() string { return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lon) }
