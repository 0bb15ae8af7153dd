package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/pkg/errors"
	"github.com/route-estimation-service/internal/pkg/utils"
	"github.com/route-estimation-service/internal/pkg/validator"
	"github.com/route-estimation-service/internal/usecase"
	"github.com/route-estimation-service/internal/usecase/dto"
)

// EstimateHandler - handler for route estimate requests
type EstimateHandler struct {
	estimateUC *usecase.EstimateUseCase
	logger     *zap.Logger
}

// NewEstimateHandler - creation of a new EstimateHandler
func NewEstimateHandler(estimateUC *usecase.EstimateUseCase, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimateUC: estimateUC,
		logger:     logger,
	}
}

// EstimateRoute godoc
// @Summary Estimate passengers and fuel cost for a stop sequence
// @Description Resolves the ordered stop ids against the catalog, computes the road path between them, derives features and predicts expected passengers and fuel cost. When the routing engine is unreachable the distance is approximated from great-circle legs and the response is marked approximate. Hour and weekend can be pinned for what-if queries.
// @Tags Estimation
// @Accept json
// @Produce json
// @Param request body dto.EstimateRouteRequest true "Ordered stop ids with optional hour and weekend overrides"
// @Success 200 {object} utils.SuccessResponse{data=dto.EstimateRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/routes/estimate [post]
func (h *EstimateHandler) EstimateRoute(c *fiber.Ctx) error {
	var req dto.EstimateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("malformed request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.estimateUC.EstimateRoute(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
