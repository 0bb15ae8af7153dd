package repository

import (
	"context"

	"github.com/route-estimation-service/internal/domain"
)

// RoutingRepository computes road-network paths between ordered coordinates.
type RoutingRepository interface {
	// ComputeRoute returns the driving path through the given points in order.
	ComputeRoute(ctx context.Context, points []domain.Point) (*domain.RoutePath, error)
}
