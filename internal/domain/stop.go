package domain

import "strings"

// Stop categories as they appear in the extraction dataset.
const (
	CategoryTransportHub = "transport_hub"
	CategoryAirport      = "airport"
	CategoryCommercial   = "commercial"
	CategoryTourist      = "tourist"
	CategoryEducational  = "educational"
	CategoryMedical      = "medical"
	CategoryRegular      = "regular"
)

// HighDemandThreshold marks stops whose popularity makes them worth calling
// out separately in an estimate.
const HighDemandThreshold = 1.5

// Stop is a named boarding/alighting point. Stops are produced by the offline
// extraction pipeline, loaded once at startup and never mutated afterwards.
type Stop struct {
	ID         string  `json:"id" db:"bus_stop_id"`
	Name       string  `json:"name" db:"name"`
	Latitude   float64 `json:"latitude" db:"lat"`
	Longitude  float64 `json:"longitude" db:"lon"`
	District   string  `json:"district,omitempty" db:"district"`
	Category   string  `json:"category,omitempty" db:"category"`
	Popularity float64 `json:"popularity" db:"demand_multiplier"`
}

// Point returns the stop position as a coordinate pair.
func (s Stop) Point() Point {
	return Point{Lat: s.Latitude, Lon: s.Longitude}
}

// IsHighDemand reports whether the stop sits above the high-demand threshold.
func (s Stop) IsHighDemand() bool {
	return s.Popularity >= HighDemandThreshold
}

// StopDistance pairs a stop with its distance from a query point.
type StopDistance struct {
	Stop       Stop    `json:"stop"`
	DistanceKm float64 `json:"distance_km"`
}

var categoryBoosts = map[string]float64{
	CategoryTransportHub: 0.8,
	CategoryAirport:      1.0,
	CategoryCommercial:   0.5,
	CategoryTourist:      0.4,
	CategoryEducational:  0.3,
	CategoryMedical:      0.2,
	CategoryRegular:      0.0,
}

var highDensityDistricts = map[string]bool{
	"ernakulam":          true,
	"thiruvananthapuram": true,
	"kozhikode":          true,
}

var mediumDensityDistricts = map[string]bool{
	"thrissur":   true,
	"kollam":     true,
	"kannur":     true,
	"alappuzha":  true,
	"kottayam":   true,
	"palakkad":   true,
	"malappuram": true,
}

// DerivePopularity computes a demand multiplier from stop metadata for
// datasets that do not carry explicit values. Base 1.0, boosted by category
// and by district density.
func DerivePopularity(category, district string) float64 {
	m := 1.0

	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "_")
	if boost, ok := categoryBoosts[key]; ok {
		m += boost
	}

	switch d := strings.ToLower(strings.TrimSpace(district)); {
	case highDensityDistricts[d]:
		m += 0.2
	case mediumDensityDistricts[d]:
		m += 0.1
	}

	return m
}
