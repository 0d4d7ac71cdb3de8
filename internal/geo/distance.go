// Package geo computes great-circle distances between WGS-84 points.
package geo

import (
	"math"

	"food-match-service/internal/domain"
)

// Mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance between a and b in kilometers.
//
// The result is symmetric and exactly zero for identical points. Inputs are not
// validated; NaN or out-of-range coordinates give undefined results.
func Distance(a, b domain.GeoPoint) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	dPhi := radians(b.Lat - a.Lat)
	dLambda := radians(b.Lon - a.Lon)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
