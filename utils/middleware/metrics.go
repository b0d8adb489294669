package middleware

import (
	"github.com/Abdelrazek97/form-app/utils/metrics"
	"github.com/gofiber/fiber/v2"
)

// RequestMetrics counts every request by method, route pattern and status
func RequestMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		metrics.ObserveRequest(c.Method(), c.Route().Path, status)
		return err
	}
}
