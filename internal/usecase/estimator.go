package usecase

import (
	"context"

	"github.com/route-estimation-service/internal/usecase/dto"
)

// RouteEstimator defines the interface for route estimation
type RouteEstimator interface {
	EstimateRoute(ctx context.Context, req dto.EstimateRouteRequest) (*dto.EstimateRouteResponse, error)
}
