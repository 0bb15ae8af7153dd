// Package metrics provides Prometheus metrics for the route estimation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for EstimatesTotal.
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Estimation metrics
	EstimatesTotal         *prometheus.CounterVec
	RoutingRequestDuration prometheus.Histogram
	RoutingFallbacksTotal  prometheus.Counter
	RouteCacheLookups      *prometheus.CounterVec
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_estimation_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "route_estimation_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	estimatesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_estimation_estimates_total",
			Help: "Route estimates by outcome (ok, degraded, error)",
		},
		[]string{"outcome"},
	)

	routingRequestDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_estimation_routing_request_duration_seconds",
		Help:    "Routing engine call latency distribution",
		Buckets: prometheus.DefBuckets,
	})

	routingFallbacksTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_estimation_routing_fallbacks_total",
		Help: "Route computations served by the great-circle fallback",
	})

	routeCacheLookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_estimation_route_cache_lookups_total",
			Help: "Route cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// Register all metrics with the custom registry
	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		estimatesTotal,
		routingRequestDuration,
		routingFallbacksTotal,
		routeCacheLookups,
	)

	return &Metrics{
		Registry:               registry,
		HTTPRequestsTotal:      httpRequestsTotal,
		HTTPRequestDuration:    httpRequestDuration,
		EstimatesTotal:         estimatesTotal,
		RoutingRequestDuration: routingRequestDuration,
		RoutingFallbacksTotal:  routingFallbacksTotal,
		RouteCacheLookups:      routeCacheLookups,
	}
}
