// Package risk holds the pure half of the assessment pipeline: geodesic
// distance, the tier classification policy, and evacuation status
// derivation. Nothing here does I/O or keeps state.
package risk

import (
	"math"

	"github.com/emberline/wildfire-watch/internal/models"
)

const earthRadiusMiles = 3959.0

// DistanceMiles returns the haversine great-circle distance between two
// coordinates in statute miles.
func DistanceMiles(a, b models.Coordinate) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMiles * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
