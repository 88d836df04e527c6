// Package geo computes great-circle distances on WGS-84 coordinates.
package geo

import (
	"hvac-dispatch-service/internal/domain"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by every distance in the engine.
const EarthRadiusKm = 6371.0

// DistanceKm returns the haversine distance in kilometres.
// Inputs are not validated; NaN propagates.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Between is DistanceKm for two coordinate values.
func Between(a, b domain.Coordinates) float64 {
	return DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

// PathKm sums consecutive leg distances along path.
func PathKm(path []domain.Coordinates) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Between(path[i-1], path[i])
	}
	return total
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
