// Package features derives the model input vector from route and stop
// attributes. The layout is a contract with the trained model artifact:
// any change here requires re-training and a new SchemaVersion.
package features

import (
	"time"

	"github.com/route-estimation-service/internal/domain"
)

// SchemaVersion tags the feature layout below. Model artifacts carry the
// version they were trained on and loading fails on a mismatch.
const SchemaVersion = "v2"

// Feature positions within the vector.
const (
	IdxDistanceKm = iota
	IdxDurationMin
	IdxStopCount
	IdxHourOfDay
	IdxIsWeekend
	IdxAvgStopPopularity

	Count
)

var names = [Count]string{
	IdxDistanceKm:        "distance_km",
	IdxDurationMin:       "duration_min",
	IdxStopCount:         "stop_count",
	IdxHourOfDay:         "hour_of_day",
	IdxIsWeekend:         "is_weekend",
	IdxAvgStopPopularity: "avg_stop_popularity",
}

// Names returns the feature names in vector order.
func Names() []string {
	out := make([]string, Count)
	copy(out, names[:])
	return out
}

// Build derives the feature vector for a resolved route at the given wall
// time. Pure: same inputs, same vector.
func Build(stops []domain.Stop, metrics domain.RouteMetrics, when time.Time) domain.FeatureVector {
	wd := when.Weekday()
	return BuildAt(stops, metrics, when.Hour(), wd == time.Saturday || wd == time.Sunday)
}

// BuildAt is the deterministic core of Build with the time context made
// explicit.
func BuildAt(stops []domain.Stop, metrics domain.RouteMetrics, hour int, weekend bool) domain.FeatureVector {
	fv := make(domain.FeatureVector, Count)
	fv[IdxDistanceKm] = metrics.DistanceKm()
	fv[IdxDurationMin] = metrics.DurationMinutes()
	fv[IdxStopCount] = float64(len(stops))
	fv[IdxHourOfDay] = float64(hour)
	if weekend {
		fv[IdxIsWeekend] = 1.0
	}
	fv[IdxAvgStopPopularity] = avgPopularity(stops)
	return fv
}

func avgPopularity(stops []domain.Stop) float64 {
	if len(stops) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range stops {
		p := s.Popularity
		if p <= 0 {
			p = 1.0
		}
		sum += p
	}
	return sum / float64(len(stops))
}

// IsPeakHour reports whether the hour falls into a commuter peak window.
func IsPeakHour(hour int) bool {
	return (hour >= 8 && hour <= 10) || (hour >= 17 && hour <= 19)
}

// HourMultiplier returns the demand weight of an hour bucket.
func HourMultiplier(hour int) float64 {
	switch {
	case hour >= 8 && hour <= 10:
		return 1.5
	case hour >= 17 && hour <= 19:
		return 1.4
	case hour >= 6 && hour < 8:
		return 1.1
	case hour > 19 && hour <= 21:
		return 1.0
	default:
		return 0.8
	}
}

// TimePeriod classifies an hour for reporting.
func TimePeriod(hour int) string {
	if HourMultiplier(hour) > 1.2 {
		return "peak"
	}
	return "off-peak"
}
