package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gpa-go-api/internal/config"
	"github.com/noah-isme/gpa-go-api/internal/handler"
	"github.com/noah-isme/gpa-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SessionHandler     *handler.SessionHandler
	CelebrationHandler *handler.CelebrationHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	if deps.SessionHandler != nil {
		sessions := api.Group("/sessions")
		deps.SessionHandler.Register(sessions)
	}

	if deps.CelebrationHandler != nil {
		celebrations := api.Group("/celebrations")
		deps.CelebrationHandler.Register(celebrations)
	}
}
