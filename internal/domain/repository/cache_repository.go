package repository

import (
	"context"
	"time"

	"github.com/route-estimation-service/internal/domain"
)

// CacheRepository defines the memoization layer for routing results.
type CacheRepository interface {
	// Get reads a raw value by key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a raw value with a TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// GetRouteComputation reads a memoized routing result for a stop sequence.
	GetRouteComputation(ctx context.Context, points []domain.Point) (*domain.RouteComputation, error)

	// SetRouteComputation memoizes a routing result for a stop sequence.
	SetRouteComputation(ctx context.Context, points []domain.Point, comp *domain.RouteComputation, ttl time.Duration) error

	// MarkNoRoute records that no road path connects the stop sequence.
	MarkNoRoute(ctx context.Context, points []domain.Point, ttl time.Duration) error

	// HasNoRoute reports whether the stop sequence is known to be unroutable.
	HasNoRoute(ctx context.Context, points []domain.Point) (bool, error)
}
