package handlers

import (
	"context"
	"time"

	"rutinas/internal/app"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

func HealthHandler(router fiber.Router, app *app.App) {
	router.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		status := fiber.StatusOK
		response := fiber.Map{
			"status":   "ok",
			"version":  app.Config.GeneralVersion,
			"service":  "rutinas_api",
			"database": "ok",
		}

		if err := app.Database.Ping(ctx); err != nil {
			status = fiber.StatusServiceUnavailable
			response["status"] = "degraded"
			response["database"] = "unavailable"
		}

		return c.Status(status).JSON(response)
	})
}
