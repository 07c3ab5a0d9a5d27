package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"stickynotes/pkg/metrics"
)

// NewMetricsMiddleware считает запросы по шаблону маршрута.
func NewMetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		var fiberErr *fiber.Error
		if err != nil {
			status = fiber.StatusInternalServerError
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		m.HTTPRequest(ctx.Method(), ctx.Route().Path, status)
		return err
	}
}
