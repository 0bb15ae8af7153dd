package domain

// ComputationStatus tells how a route computation was obtained.
type ComputationStatus string

const (
	// ComputationOK means the routing engine returned a real road-network path.
	ComputationOK ComputationStatus = "ok"
	// ComputationDegraded means the routing engine was unavailable and the
	// metrics were approximated from great-circle distances between stops.
	ComputationDegraded ComputationStatus = "degraded"
)

// RouteMetrics are the totals for one computed route.
type RouteMetrics struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// DistanceKm returns the route distance in kilometers.
func (m RouteMetrics) DistanceKm() float64 {
	return m.DistanceMeters / 1000.0
}

// DurationMinutes returns the route duration in minutes.
func (m RouteMetrics) DurationMinutes() float64 {
	return m.DurationSeconds / 60.0
}

// RoutePath is what the routing engine produces for an ordered coordinate
// list: the road-network geometry plus its totals.
type RoutePath struct {
	Geometry []Point      `json:"geometry"`
	Metrics  RouteMetrics `json:"metrics"`
}

// RouteComputation is the result of the route step: either a real path or a
// degraded straight-line approximation. Hard failures (no route, bad input)
// travel as errors, never inside this value.
type RouteComputation struct {
	Status   ComputationStatus `json:"status"`
	Geometry []Point           `json:"geometry"`
	Metrics  RouteMetrics      `json:"metrics"`
}

// Approximate reports whether the computation came from the degraded
// fallback rather than the routing engine.
func (c RouteComputation) Approximate() bool {
	return c.Status == ComputationDegraded
}

// FeatureVector is the fixed-length input the prediction model consumes.
// Layout and scaling are owned by the features package and bound to the
// model artifact via a schema version tag.
type FeatureVector []float64

// PredictionResult is the model output for one route. Passenger counts and
// fuel costs are clamped to zero before they reach this struct. Load factor
// and effective mileage are diagnostic values derived during fuel costing.
type PredictionResult struct {
	ExpectedPassengers   float64 `json:"expected_passengers"`
	ExpectedFuelCost     float64 `json:"expected_fuel_cost"`
	LoadFactorPercent    float64 `json:"load_factor_percent"`
	EffectiveMileageKmpl float64 `json:"effective_mileage_kmpl"`
}

// RouteEconomics is the revenue-side estimate built on top of a prediction.
type RouteEconomics struct {
	EstimatedRevenue float64 `json:"estimated_revenue"`
	EstimatedProfit  float64 `json:"estimated_profit"`
	FuelCost         float64 `json:"fuel_cost"`
	TimePeriod       string  `json:"time_period"`
}

// RouteEstimate is the aggregate returned to the caller: resolved stops,
// geometry, metrics, prediction and economics, with an approximate flag when
// degraded-mode routing was used. Constructed fresh per request; nothing in
// it is shared across requests.
type RouteEstimate struct {
	Stops       []Stop           `json:"stops"`
	Geometry    []Point          `json:"geometry"`
	Metrics     RouteMetrics     `json:"metrics"`
	Prediction  PredictionResult `json:"prediction"`
	Economics   RouteEconomics   `json:"economics"`
	Approximate bool             `json:"approximate"`
}

// HighDemandStops returns the resolved stops above the high-demand
// threshold, in route order.
func (e *RouteEstimate) HighDemandStops() []Stop {
	var out []Stop
	for _, s := range e.Stops {
		if s.IsHighDemand() {
			out = append(out, s)
		}
	}
	return out
}
