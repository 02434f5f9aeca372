// Package app wires the fiber application together.
package app

import (
	fiber "github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/launchforge/launchforge/internal/api/v1/handlers"
	"github.com/launchforge/launchforge/internal/api/v1/routes"
)

// New builds the fiber app with middleware and all v1 routes registered.
func New(jobHandler *handlers.JobHandler, projectHandler *handlers.ProjectHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	routes.RegisterRoutes(app, jobHandler, projectHandler)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
