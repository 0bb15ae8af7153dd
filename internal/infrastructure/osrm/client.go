package osrm

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/route-estimation-service/internal/config"
	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/domain/repository"
	"github.com/route-estimation-service/internal/pkg/errors"
	"github.com/route-estimation-service/internal/pkg/utils"
)

// Response codes of the OSRM HTTP API. NoRoute and NoSegment are permanent
// for the given waypoints; everything else non-Ok is treated as an upstream
// problem.
const (
	codeOK        = "Ok"
	codeNoRoute   = "NoRoute"
	codeNoSegment = "NoSegment"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
	maxRetries int
	limiter    *rate.Limiter
	breaker    *circuitBreaker
	logger     *zap.Logger
}

// NewClient creates an OSRM-backed RoutingRepository. Calls are rate limited,
// retried on transient failures and guarded by a circuit breaker.
func NewClient(cfg *config.RoutingConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		profile:    cfg.Profile,
		maxRetries: cfg.MaxRetries,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateBurst),
		breaker:    newCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
		logger:     logger,
	}
}

type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Geometry string  `json:"geometry"`
}

// ComputeRoute asks the engine for a driving path through the given points.
func (c *client) ComputeRoute(ctx context.Context, points []domain.Point) (*domain.RoutePath, error) {
	if len(points) < 2 {
		return nil, errors.ErrInvalidCoordinates.WithMessage("a route needs at least two waypoints")
	}
	for _, p := range points {
		if !utils.ValidateCoordinates(p.Lat, p.Lon) {
			return nil, errors.ErrInvalidCoordinates.WithMessage(
				fmt.Sprintf("waypoint (%.5f, %.5f) is out of range", p.Lat, p.Lon))
		}
	}

	if !c.breaker.Allow() {
		c.logger.Warn("Routing circuit open, refusing call")
		return nil, errors.ErrRoutingUnavailable.WithMessage("routing circuit open: upstream unavailable")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrRoutingUnavailable.WithMessage("rate limit wait aborted"), err)
	}

	url := c.routeURL(points)
	c.logger.Debug("Calling routing engine",
		zap.String("url", url),
		zap.Int("waypoints", len(points)))

	makeReq := func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}

	resp, err := c.doWithRetry(ctx, makeReq)
	if err != nil {
		c.breaker.RecordFailure()
		c.logger.Error("Routing engine unreachable", zap.Error(err))
		return nil, errors.Wrap(errors.ErrRoutingUnavailable, err)
	}
	defer resp.Body.Close()

	// The engine answered. 4xx responses still carry a diagnostic code in
	// the body, so the circuit resets here.
	c.breaker.RecordSuccess()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Error("Failed to decode routing response", zap.Error(err))
		return nil, errors.Wrap(errors.ErrRoutingUnavailable.WithMessage("malformed engine response"), err)
	}

	switch decoded.Code {
	case codeOK:
	case codeNoRoute, codeNoSegment:
		c.logger.Warn("No road path between waypoints",
			zap.String("code", decoded.Code),
			zap.String("message", decoded.Message))
		return nil, errors.ErrNoRouteFound.WithDetails(map[string]interface{}{
			"engine_code":    decoded.Code,
			"engine_message": decoded.Message,
		})
	default:
		c.logger.Error("Routing engine rejected request",
			zap.String("code", decoded.Code),
			zap.String("message", decoded.Message))
		return nil, errors.ErrRoutingUnavailable.WithMessage(
			fmt.Sprintf("engine code %s: %s", decoded.Code, decoded.Message))
	}

	if len(decoded.Routes) == 0 {
		return nil, errors.ErrNoRouteFound.WithMessage("engine returned an empty route set")
	}

	route := decoded.Routes[0]
	geometry, err := decodeGeometry(route.Geometry)
	if err != nil {
		c.logger.Error("Failed to decode route geometry", zap.Error(err))
		return nil, errors.Wrap(errors.ErrRoutingUnavailable.WithMessage("malformed route geometry"), err)
	}

	c.logger.Debug("Routing engine call successful",
		zap.Float64("distance_m", route.Distance),
		zap.Float64("duration_s", route.Duration),
		zap.Int("geometry_points", len(geometry)))

	return &domain.RoutePath{
		Geometry: geometry,
		Metrics: domain.RouteMetrics{
			DistanceMeters:  route.Distance,
			DurationSeconds: route.Duration,
		},
	}, nil
}

// BreakerState returns the circuit state for health reporting.
func (c *client) BreakerState() string {
	return c.breaker.State()
}

// routeURL renders the waypoints as lon,lat pairs the way the engine expects.
func (c *client) routeURL(points []domain.Point) string {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%.5f,%.5f", p.Lon, p.Lat)
	}
	return fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=polyline",
		c.baseURL, c.profile, strings.Join(coords, ";"))
}

func decodeGeometry(encoded string) ([]domain.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	geometry := make([]domain.Point, len(coords))
	for i, c := range coords {
		geometry[i] = domain.Point{Lat: c[0], Lon: c[1]}
	}
	return geometry, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("routing engine status %d: %s", e.Code, e.Body)
}

// do executes the request. 429 and 5xx become httpStatusError so the retry
// loop can recognize them; other statuses pass through with the body intact
// since the engine reports route-level errors on 4xx.
func (c *client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429, 5xx) with
// exponential backoff while respecting context cancellation.
func (c *client) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	maxAttempts := c.maxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if stderrors.As(err, &he) {
			retry = true
		}

		var netErr net.Error
		if !retry && stderrors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		c.logger.Warn("Routing request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
