package domain

import "math"

const (
	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0

	// kmToNauticalMiles converts kilometers to nautical miles.
	kmToNauticalMiles = 0.539957
)

// DistanceNM returns the great-circle distance between two coordinates in
// nautical miles, computed with the haversine formula on a spherical Earth.
// Callers are responsible for guarding missing coordinates.
func DistanceNM(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c * kmToNauticalMiles
}
