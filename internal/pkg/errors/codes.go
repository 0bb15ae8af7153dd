package errors

import "net/http"

// Request-scoped errors. These are returned to the caller as structured
// results and never crash the process.
var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUnknownStop = New(
		"UNKNOWN_STOP",
		"Stop id not found in catalog",
		http.StatusNotFound,
	)

	ErrNoRouteFound = New(
		"NO_ROUTE_FOUND",
		"No road-network path exists between the requested stops",
		http.StatusUnprocessableEntity,
	)

	ErrRoutingUnavailable = New(
		"ROUTING_UNAVAILABLE",
		"Routing engine unreachable or timed out",
		http.StatusServiceUnavailable,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)
)

// Startup errors. Any of these means the process must not serve traffic.
var (
	ErrCatalogLoadFailure = New(
		"CATALOG_LOAD_FAILURE",
		"Stop catalog dataset is missing or invalid",
		http.StatusInternalServerError,
	)

	ErrModelSchemaMismatch = New(
		"MODEL_SCHEMA_MISMATCH",
		"Model artifact does not match the current feature schema",
		http.StatusInternalServerError,
	)
)

// Infrastructure errors.
var (
	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
