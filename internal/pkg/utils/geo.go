package utils

import (
	"math"

	"github.com/route-estimation-service/internal/domain"
)

const earthRadiusKm = 6371.0

// HaversineDistance computes the great-circle distance between two points in
// kilometers.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// PathDistanceKm sums the great-circle legs of an ordered point sequence.
func PathDistanceKm(points []domain.Point) float64 {
	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		total += HaversineDistance(points[i].Lat, points[i].Lon, points[i+1].Lat, points[i+1].Lon)
	}
	return total
}

// GreatCirclePath builds the degraded-mode route computation for an ordered
// stop coordinate list: straight legs between stops, duration from a flat
// city speed.
func GreatCirclePath(points []domain.Point, citySpeedKmph float64) domain.RouteComputation {
	distanceKm := PathDistanceKm(points)

	durationSeconds := 0.0
	if citySpeedKmph > 0 {
		durationSeconds = distanceKm / citySpeedKmph * 3600.0
	}

	geometry := make([]domain.Point, len(points))
	copy(geometry, points)

	return domain.RouteComputation{
		Status:   domain.ComputationDegraded,
		Geometry: geometry,
		Metrics: domain.RouteMetrics{
			DistanceMeters:  distanceKm * 1000.0,
			DurationSeconds: durationSeconds,
		},
	}
}

// ValidateCoordinates checks latitude/longitude ranges.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
