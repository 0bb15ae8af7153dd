package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/catalog"
	"github.com/route-estimation-service/internal/config"
	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/domain/repository"
	"github.com/route-estimation-service/internal/features"
	"github.com/route-estimation-service/internal/metrics"
	"github.com/route-estimation-service/internal/model"
	"github.com/route-estimation-service/internal/pkg/errors"
	"github.com/route-estimation-service/internal/pkg/utils"
	"github.com/route-estimation-service/internal/usecase/dto"
)

// Ensure EstimateUseCase implements RouteEstimator interface
var _ RouteEstimator = (*EstimateUseCase)(nil)

// EstimateUseCase - use case for assembling route estimates: stop resolution,
// routing, feature building, prediction and economics
type EstimateUseCase struct {
	catalog     *catalog.Catalog
	routingRepo repository.RoutingRepository
	cacheRepo   repository.CacheRepository
	predictor   Predictor
	metrics     *metrics.Metrics
	logger      *zap.Logger

	estimation     config.EstimationConfig
	routeTTL       time.Duration
	noRouteTTL     time.Duration
	routingTimeout time.Duration

	now func() time.Time
}

// NewEstimateUseCase - creation of a new EstimateUseCase
func NewEstimateUseCase(
	cat *catalog.Catalog,
	routingRepo repository.RoutingRepository,
	cacheRepo repository.CacheRepository,
	predictor Predictor,
	m *metrics.Metrics,
	estimation config.EstimationConfig,
	cache config.CacheConfig,
	routingTimeout time.Duration,
	logger *zap.Logger,
) *EstimateUseCase {
	return &EstimateUseCase{
		catalog:        cat,
		routingRepo:    routingRepo,
		cacheRepo:      cacheRepo,
		predictor:      predictor,
		metrics:        m,
		logger:         logger,
		estimation:     estimation,
		routeTTL:       cache.RouteTTL,
		noRouteTTL:     cache.NoRouteTTL,
		routingTimeout: routingTimeout,
		now:            time.Now,
	}
}

// WithClock overrides the wall-clock source. Intended for tests.
func (uc *EstimateUseCase) WithClock(now func() time.Time) *EstimateUseCase {
	uc.now = now
	return uc
}

// EstimateRoute runs the full estimation pipeline for an ordered stop
// sequence. Stages: validate, resolve stops, compute route (memoized, with a
// straight-line fallback when the engine is down), build features, predict,
// price. Unknown stops and unroutable sequences are hard failures.
func (uc *EstimateUseCase) EstimateRoute(ctx context.Context, req dto.EstimateRouteRequest) (*dto.EstimateRouteResponse, error) {
	if len(req.StopIDs) < 2 {
		return nil, errors.ErrInvalidRequest.WithMessage("a route needs at least two stops")
	}
	for i := 1; i < len(req.StopIDs); i++ {
		if req.StopIDs[i] == req.StopIDs[i-1] {
			return nil, errors.ErrInvalidRequest.WithMessage("consecutive duplicate stop ids").WithDetails(map[string]interface{}{
				"stop_id": req.StopIDs[i],
			})
		}
	}
	if req.Hour != nil && (*req.Hour < 0 || *req.Hour > 23) {
		return nil, errors.ErrInvalidRequest.WithMessage("hour must be between 0 and 23")
	}

	// Resolve the sequence against the catalog
	stops := make([]domain.Stop, len(req.StopIDs))
	points := make([]domain.Point, len(req.StopIDs))
	for i, id := range req.StopIDs {
		stop, ok := uc.catalog.Lookup(id)
		if !ok {
			return nil, errors.ErrUnknownStop.WithDetails(map[string]interface{}{
				"stop_id": id,
			})
		}
		stops[i] = stop
		points[i] = stop.Point()
	}

	comp, err := uc.computeRoute(ctx, points)
	if err != nil {
		uc.metrics.EstimatesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	// Time context: explicit overrides win over the wall clock
	hour, weekend := uc.timeContext(req.Hour, req.Weekend)

	fv := features.BuildAt(stops, comp.Metrics, hour, weekend)
	prediction, err := uc.predictor.Predict(fv)
	if err != nil {
		uc.logger.Error("Prediction failed", zap.Error(err))
		uc.metrics.EstimatesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	estimate := &domain.RouteEstimate{
		Stops:       stops,
		Geometry:    comp.Geometry,
		Metrics:     comp.Metrics,
		Prediction:  prediction,
		Economics:   uc.buildEconomics(comp.Metrics, prediction, hour),
		Approximate: comp.Approximate(),
	}

	outcome := metrics.OutcomeOK
	if estimate.Approximate {
		outcome = metrics.OutcomeDegraded
	}
	uc.metrics.EstimatesTotal.WithLabelValues(outcome).Inc()

	uc.logger.Info("Route estimate assembled",
		zap.Int("stops", len(stops)),
		zap.Float64("distance_km", comp.Metrics.DistanceKm()),
		zap.Float64("expected_passengers", prediction.ExpectedPassengers),
		zap.Bool("approximate", estimate.Approximate))

	return dto.ConvertEstimate(estimate, hour, weekend, uc.predictor.SchemaVersion()), nil
}

// computeRoute resolves the routing stage: negative cache, memoized result,
// live engine call, or the straight-line fallback when the engine is
// unavailable. Only real engine results are memoized; degraded ones are
// recomputed so a recovered engine takes over immediately.
func (uc *EstimateUseCase) computeRoute(ctx context.Context, points []domain.Point) (*domain.RouteComputation, error) {
	// Known-unroutable sequences fail fast without touching the engine
	noRoute, err := uc.cacheRepo.HasNoRoute(ctx, points)
	if err != nil {
		uc.logger.Warn("No-route marker lookup failed", zap.Error(err))
	} else if noRoute {
		uc.metrics.RouteCacheLookups.WithLabelValues("negative").Inc()
		return nil, errors.ErrNoRouteFound.WithMessage("stop sequence is known to be unroutable")
	}

	cached, err := uc.cacheRepo.GetRouteComputation(ctx, points)
	if err != nil {
		uc.logger.Warn("Route cache lookup failed", zap.Error(err))
	}
	if cached != nil {
		uc.metrics.RouteCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	}
	uc.metrics.RouteCacheLookups.WithLabelValues("miss").Inc()

	routingCtx, cancel := context.WithTimeout(ctx, uc.routingTimeout)
	defer cancel()

	start := time.Now()
	path, err := uc.routingRepo.ComputeRoute(routingCtx, points)
	uc.metrics.RoutingRequestDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		comp := &domain.RouteComputation{
			Status:   domain.ComputationOK,
			Geometry: path.Geometry,
			Metrics:  path.Metrics,
		}
		if cacheErr := uc.cacheRepo.SetRouteComputation(ctx, points, comp, uc.routeTTL); cacheErr != nil {
			uc.logger.Warn("Route cache write failed", zap.Error(cacheErr))
		}
		return comp, nil

	case errors.IsCode(err, errors.ErrNoRouteFound):
		if cacheErr := uc.cacheRepo.MarkNoRoute(ctx, points, uc.noRouteTTL); cacheErr != nil {
			uc.logger.Warn("No-route marker write failed", zap.Error(cacheErr))
		}
		return nil, err

	case errors.IsCode(err, errors.ErrRoutingUnavailable):
		// Engine down or timed out: approximate from great-circle legs and
		// mark the estimate so the caller knows it is not road-accurate
		uc.logger.Warn("Routing unavailable, falling back to straight-line estimate", zap.Error(err))
		uc.metrics.RoutingFallbacksTotal.Inc()
		comp := utils.GreatCirclePath(points, uc.estimation.CitySpeedKmph)
		return &comp, nil

	default:
		uc.logger.Error("Route computation failed", zap.Error(err))
		return nil, err
	}
}

// timeContext resolves the hour/weekend pair from request overrides or the
// wall clock.
func (uc *EstimateUseCase) timeContext(hourOverride *int, weekendOverride *bool) (int, bool) {
	now := uc.now()
	hour := now.Hour()
	wd := now.Weekday()
	weekend := wd == time.Saturday || wd == time.Sunday

	if hourOverride != nil {
		hour = *hourOverride
	}
	if weekendOverride != nil {
		weekend = *weekendOverride
	}
	return hour, weekend
}

// buildEconomics prices a predicted route. Revenue assumes a passenger rides
// AvgTripRatio of the route on average, with the paying count capped at bus
// capacity.
func (uc *EstimateUseCase) buildEconomics(m domain.RouteMetrics, p domain.PredictionResult, hour int) domain.RouteEconomics {
	paying := p.ExpectedPassengers
	if paying > model.DefaultBusCapacity {
		paying = model.DefaultBusCapacity
	}

	avgTripKm := m.DistanceKm() * uc.estimation.AvgTripRatio
	revenue := paying * avgTripKm * uc.estimation.FarePerKm

	return domain.RouteEconomics{
		EstimatedRevenue: revenue,
		FuelCost:         p.ExpectedFuelCost,
		EstimatedProfit:  revenue - p.ExpectedFuelCost,
		TimePeriod:       features.TimePeriod(hour),
	}
}
