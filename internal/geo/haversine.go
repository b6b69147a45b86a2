package geo

import (
	"math"
)

// EarthRadiusM is Earth's mean radius in meters.
const EarthRadiusM = 6371000.0

// DistanceM returns the great-circle distance in meters between two
// lat/lng points given in degrees, using the haversine formula.
func DistanceM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadiusM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
