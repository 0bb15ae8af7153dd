package dto

// EstimateRouteRequest - ordered stop sequence to estimate. Hour and Weekend
// pin the time-of-day context for reproducible what-if queries; when absent
// the service wall clock is used.
type EstimateRouteRequest struct {
	StopIDs []string `json:"stop_ids" validate:"required,min=2,max=50,dive,stop_id"`
	Hour    *int     `json:"hour,omitempty" validate:"omitempty,min=0,max=23"`
	Weekend *bool    `json:"weekend,omitempty"`
}

// OverridesClock reports whether the request pins the time-of-day context.
func (r *EstimateRouteRequest) OverridesClock() bool {
	return r.Hour != nil || r.Weekend != nil
}

// NearestStopsRequest - query point for nearest-stop lookup
type NearestStopsRequest struct {
	Lat   float64 `json:"lat" validate:"min=-90,max=90"`
	Lon   float64 `json:"lon" validate:"min=-180,max=180"`
	Limit int     `json:"limit" validate:"omitempty,min=1,max=50"`
}
