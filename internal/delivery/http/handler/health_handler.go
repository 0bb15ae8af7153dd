package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/catalog"
	"github.com/route-estimation-service/internal/domain/repository"
	"github.com/route-estimation-service/internal/model"
	"github.com/route-estimation-service/internal/repository/cache"
	"github.com/route-estimation-service/internal/repository/postgres"
)

// HealthHandler - handler for liveness and dependency health
type HealthHandler struct {
	db      *postgres.DB // nil when the catalog is file-sourced
	redis   *cache.Redis
	catalog *catalog.Catalog
	model   *model.Model
	routing repository.RoutingRepository
	logger  *zap.Logger
}

// NewHealthHandler - creation of a new HealthHandler
func NewHealthHandler(
	db *postgres.DB,
	redis *cache.Redis,
	cat *catalog.Catalog,
	mdl *model.Model,
	routing repository.RoutingRepository,
	logger *zap.Logger,
) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redis,
		catalog: cat,
		model:   mdl,
		routing: routing,
		logger:  logger,
	}
}

// Health godoc
// @Summary Service health
// @Description Reports liveness plus the state of the service dependencies: postgres (when used), redis, the loaded model and the routing circuit.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := "healthy"
	checks := fiber.Map{}

	if h.db != nil {
		if err := h.db.Health(c.Context()); err != nil {
			h.logger.Warn("Postgres health check failed", zap.Error(err))
			checks["postgres"] = "down"
			status = "degraded"
		} else {
			checks["postgres"] = "up"
		}
	}

	if err := h.redis.Health(c.Context()); err != nil {
		h.logger.Warn("Redis health check failed", zap.Error(err))
		checks["redis"] = "down"
		status = "degraded"
	} else {
		checks["redis"] = "up"
	}

	checks["catalog_stops"] = h.catalog.Size()
	checks["model_schema"] = h.model.SchemaVersion()

	if b, ok := h.routing.(interface{ BreakerState() string }); ok {
		checks["routing_breaker"] = b.BreakerState()
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"time":   time.Now(),
		"checks": checks,
	})
}
