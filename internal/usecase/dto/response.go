package dto

import (
	"fmt"
	"math"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/features"
)

// EstimateRouteResponse - assembled estimate for one stop sequence
type EstimateRouteResponse struct {
	Stops           []StopSummary     `json:"stops"`
	DistanceKm      float64           `json:"distance_km"`
	DurationMinutes float64           `json:"duration_minutes"`
	Geometry        []domain.Point    `json:"geometry,omitempty"`
	Approximate     bool              `json:"approximate"`
	Prediction      PredictionSummary `json:"prediction"`
	Economics       EconomicsSummary  `json:"economics"`
	HighDemandStops []HighDemandStop  `json:"high_demand_stops"`
	CalculationTime string            `json:"calculation_time"`
	IsPeakHour      bool              `json:"is_peak_hour"`
	IsWeekend       bool              `json:"is_weekend"`
	SchemaVersion   string            `json:"schema_version"`
}

// PredictionSummary - model output rounded for display
type PredictionSummary struct {
	ExpectedPassengers   int     `json:"expected_passengers"`
	ExpectedFuelCost     float64 `json:"expected_fuel_cost"`
	LoadFactorPercent    float64 `json:"load_factor_percent"`
	EffectiveMileageKmpl float64 `json:"effective_mileage_kmpl"`
}

// EconomicsSummary - revenue-side estimate rounded for display
type EconomicsSummary struct {
	EstimatedRevenue float64 `json:"estimated_revenue"`
	FuelCost         float64 `json:"fuel_cost"`
	EstimatedProfit  float64 `json:"estimated_profit"`
	TimePeriod       string  `json:"time_period"`
}

// HighDemandStop - stop whose demand multiplier crosses the high-demand threshold
type HighDemandStop struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Multiplier float64 `json:"multiplier"`
}

// StopSummary - one catalog stop
type StopSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	District   string  `json:"district,omitempty"`
	Category   string  `json:"category,omitempty"`
	Popularity float64 `json:"popularity"`
}

// ListStopsResponse - full stop catalog
type ListStopsResponse struct {
	Stops []StopSummary `json:"stops"`
	Total int           `json:"total"`
}

// NearestStop - catalog stop with its distance from the query point
type NearestStop struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Category   string  `json:"category,omitempty"`
	DistanceKm float64 `json:"distance_km"`
}

// NearestStopsResponse - stops ordered by distance from the query point
type NearestStopsResponse struct {
	Stops []NearestStop `json:"stops"`
}

// ConvertStop converts a domain stop to its response form.
func ConvertStop(s domain.Stop) StopSummary {
	return StopSummary{
		ID:         s.ID,
		Name:       s.Name,
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		District:   s.District,
		Category:   s.Category,
		Popularity: s.Popularity,
	}
}

// ConvertNearestStop converts a distance-annotated stop to its response form.
func ConvertNearestStop(sd domain.StopDistance) NearestStop {
	return NearestStop{
		ID:         sd.Stop.ID,
		Name:       sd.Stop.Name,
		Latitude:   sd.Stop.Latitude,
		Longitude:  sd.Stop.Longitude,
		Category:   sd.Stop.Category,
		DistanceKm: round2(sd.DistanceKm),
	}
}

// ConvertEstimate shapes a domain estimate for the wire. Display rounding
// happens here so the domain math stays exact.
func ConvertEstimate(est *domain.RouteEstimate, hour int, weekend bool, schemaVersion string) *EstimateRouteResponse {
	stops := make([]StopSummary, len(est.Stops))
	for i, s := range est.Stops {
		stops[i] = ConvertStop(s)
	}

	highDemand := make([]HighDemandStop, 0)
	for _, s := range est.HighDemandStops() {
		highDemand = append(highDemand, HighDemandStop{
			Name:       s.Name,
			Category:   s.Category,
			Multiplier: round2(s.Popularity),
		})
	}

	return &EstimateRouteResponse{
		Stops:           stops,
		DistanceKm:      round2(est.Metrics.DistanceKm()),
		DurationMinutes: round1(est.Metrics.DurationMinutes()),
		Geometry:        est.Geometry,
		Approximate:     est.Approximate,
		Prediction: PredictionSummary{
			ExpectedPassengers:   int(math.Round(est.Prediction.ExpectedPassengers)),
			ExpectedFuelCost:     round2(est.Prediction.ExpectedFuelCost),
			LoadFactorPercent:    round1(est.Prediction.LoadFactorPercent),
			EffectiveMileageKmpl: round2(est.Prediction.EffectiveMileageKmpl),
		},
		Economics: EconomicsSummary{
			EstimatedRevenue: round2(est.Economics.EstimatedRevenue),
			FuelCost:         round2(est.Economics.FuelCost),
			EstimatedProfit:  round2(est.Economics.EstimatedProfit),
			TimePeriod:       est.Economics.TimePeriod,
		},
		HighDemandStops: highDemand,
		CalculationTime: fmt.Sprintf("%02d:00", hour),
		IsPeakHour:      features.IsPeakHour(hour),
		IsWeekend:       weekend,
		SchemaVersion:   schemaVersion,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
