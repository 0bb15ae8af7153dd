// Package docs Route Estimation Service API.
//
// Route assembly and demand prediction service for intercity bus planning.
// Resolves ordered stop sequences against the stop catalog, computes
// road-network routes through OSRM, and estimates expected passengers,
// fuel cost and profitability with a trained regression model.
//
// Main capabilities:
// - Route estimation for an ordered stop sequence (distance, duration, geometry)
// - Passenger demand and fuel cost prediction with route economics
// - Degraded great-circle fallback when the routing engine is unavailable
// - Stop catalog listing and nearest-stop lookup
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
