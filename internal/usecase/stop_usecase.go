package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/catalog"
	"github.com/route-estimation-service/internal/pkg/errors"
	"github.com/route-estimation-service/internal/pkg/utils"
	"github.com/route-estimation-service/internal/usecase/dto"
)

// StopUseCase - use case for reading the stop catalog
type StopUseCase struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewStopUseCase - creation of a new StopUseCase
func NewStopUseCase(cat *catalog.Catalog, logger *zap.Logger) *StopUseCase {
	return &StopUseCase{
		catalog: cat,
		logger:  logger,
	}
}

// ListStops returns every stop in the catalog in load order.
func (uc *StopUseCase) ListStops(ctx context.Context) (*dto.ListStopsResponse, error) {
	all := uc.catalog.All()

	stops := make([]dto.StopSummary, 0, len(all))
	for _, s := range all {
		stops = append(stops, dto.ConvertStop(s))
	}

	return &dto.ListStopsResponse{
		Stops: stops,
		Total: len(stops),
	}, nil
}

// NearestStops returns the catalog stops closest to a query point, ordered
// by great-circle distance.
func (uc *StopUseCase) NearestStops(ctx context.Context, req dto.NearestStopsRequest) (*dto.NearestStopsResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	if req.Limit == 0 {
		req.Limit = 5
	}

	nearest := uc.catalog.Nearest(req.Lat, req.Lon, req.Limit)

	stops := make([]dto.NearestStop, 0, len(nearest))
	for _, sd := range nearest {
		stops = append(stops, dto.ConvertNearestStop(sd))
	}

	return &dto.NearestStopsResponse{
		Stops: stops,
	}, nil
}
