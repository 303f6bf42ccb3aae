package assignment

import (
	"math"

	"fleetbook/pkg/model"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in
// kilometers using the haversine formula. Pure and total: out-of-range
// coordinates are the caller's problem, validation happens upstream.
func DistanceKm(a, b model.GeoPoint) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
