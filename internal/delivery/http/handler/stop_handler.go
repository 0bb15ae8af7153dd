package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/pkg/errors"
	"github.com/route-estimation-service/internal/pkg/utils"
	"github.com/route-estimation-service/internal/pkg/validator"
	"github.com/route-estimation-service/internal/usecase"
	"github.com/route-estimation-service/internal/usecase/dto"
)

// StopHandler - handler for stop catalog queries
type StopHandler struct {
	stopUC *usecase.StopUseCase
	logger *zap.Logger
}

// NewStopHandler - creation of a new StopHandler
func NewStopHandler(stopUC *usecase.StopUseCase, logger *zap.Logger) *StopHandler {
	return &StopHandler{
		stopUC: stopUC,
		logger: logger,
	}
}

// ListStops godoc
// @Summary List the stop catalog
// @Description Returns every stop known to the service in catalog order.
// @Tags Stops
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ListStopsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stops [get]
func (h *StopHandler) ListStops(c *fiber.Ctx) error {
	result, err := h.stopUC.ListStops(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// NearestStops godoc
// @Summary Find the stops nearest to a point
// @Description Returns catalog stops ordered by great-circle distance from the query point.
// @Tags Stops
// @Produce json
// @Param lat query number true "Latitude of the query point"
// @Param lon query number true "Longitude of the query point"
// @Param limit query int false "Maximum number of stops" default(5)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearestStopsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stops/nearest [get]
func (h *StopHandler) NearestStops(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("lat and lon query parameters are required"))
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithMessage("lat is not a number"))
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithMessage("lon is not a number"))
	}

	req := dto.NearestStopsRequest{
		Lat:   lat,
		Lon:   lon,
		Limit: c.QueryInt("limit", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.stopUC.NearestStops(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
