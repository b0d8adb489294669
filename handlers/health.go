package handlers

import (
	"time"

	"github.com/Abdelrazek97/form-app/database"
	"github.com/Abdelrazek97/form-app/utils/metrics"
	"github.com/Abdelrazek97/form-app/utils/response"
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth pings both databases
// GET /ping
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	start := time.Now()
	err := store.HealthCheck()
	metrics.ObserveDBPing(time.Since(start))

	if err != nil {
		return response.ServiceUnavailable(c, "Database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
