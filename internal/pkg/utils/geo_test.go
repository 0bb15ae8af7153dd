package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/route-estimation-service/internal/domain"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("known city pair", func(t *testing.T) {
		// Thiruvananthapuram to Kochi, roughly 175 km great-circle
		d := HaversineDistance(8.5241, 76.9366, 9.9312, 76.2673)
		assert.InDelta(t, 175, d, 5)
	})

	t.Run("zero for identical points", func(t *testing.T) {
		assert.InDelta(t, 0, HaversineDistance(9.93, 76.26, 9.93, 76.26), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineDistance(8.5241, 76.9366, 11.2588, 75.7804)
		b := HaversineDistance(11.2588, 75.7804, 8.5241, 76.9366)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestPathDistanceKm(t *testing.T) {
	points := []domain.Point{
		{Lat: 8.5241, Lon: 76.9366},
		{Lat: 8.8932, Lon: 76.6141},
		{Lat: 9.9312, Lon: 76.2673},
	}

	legs := HaversineDistance(points[0].Lat, points[0].Lon, points[1].Lat, points[1].Lon) +
		HaversineDistance(points[1].Lat, points[1].Lon, points[2].Lat, points[2].Lon)

	assert.InDelta(t, legs, PathDistanceKm(points), 1e-9)
	assert.Zero(t, PathDistanceKm(points[:1]))
	assert.Zero(t, PathDistanceKm(nil))
}

func TestGreatCirclePath(t *testing.T) {
	points := []domain.Point{
		{Lat: 8.4875, Lon: 76.9520},
		{Lat: 9.9675, Lon: 76.3203},
	}

	comp := GreatCirclePath(points, 30)

	assert.Equal(t, domain.ComputationDegraded, comp.Status)
	assert.True(t, comp.Approximate())
	assert.Equal(t, points, comp.Geometry)
	assert.Greater(t, comp.Metrics.DistanceMeters, 0.0)

	wantSeconds := comp.Metrics.DistanceMeters / 1000.0 / 30.0 * 3600.0
	assert.InDelta(t, wantSeconds, comp.Metrics.DurationSeconds, 1e-6)
}

func TestGreatCirclePath_ZeroSpeed(t *testing.T) {
	comp := GreatCirclePath([]domain.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}, 0)
	assert.Zero(t, comp.Metrics.DurationSeconds)
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(8.5, 76.9))
	assert.False(t, ValidateCoordinates(91, 76.9))
	assert.False(t, ValidateCoordinates(8.5, 181))
	assert.False(t, ValidateCoordinates(-91, 0))
}
