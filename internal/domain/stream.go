package domain

import "github.com/google/uuid"

// Stream names (must match the publishing side of the planner backend)
const (
	StreamRouteEstimate = "stream:route:estimate"
	StreamRouteDone     = "stream:route:done"
)

// RouteEstimateJob - incoming request for an asynchronous route estimate
type RouteEstimateJob struct {
	JobID   uuid.UUID `json:"job_id"`
	StopIDs []string  `json:"stop_ids"`
	Hour    *int      `json:"hour,omitempty"`
	Weekend *bool     `json:"weekend,omitempty"`
}

// OverridesClock reports whether the job pins the time-of-day context
// instead of using the wall clock.
func (j *RouteEstimateJob) OverridesClock() bool {
	return j.Hour != nil || j.Weekend != nil
}

// RouteDoneEvent - result of an asynchronous route estimate
type RouteDoneEvent struct {
	JobID    uuid.UUID      `json:"job_id"`
	Estimate *RouteEstimate `json:"estimate,omitempty"`
	Error    string         `json:"error,omitempty"`
	Code     string         `json:"code,omitempty"`
}

// StreamMessage - one message read from a Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
