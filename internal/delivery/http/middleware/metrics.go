package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/route-estimation-service/internal/metrics"
	apperrors "github.com/route-estimation-service/internal/pkg/errors"
)

// Metrics - middleware recording request counts and latency per route
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler runs after this middleware unwinds, so map
			// the status from the error itself.
			if appErr := apperrors.FromError(err); appErr != nil {
				status = appErr.StatusCode
			} else if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// Label with the matched route pattern, not the raw path, to keep
		// cardinality bounded.
		path := c.Route().Path
		method := c.Method()

		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}
