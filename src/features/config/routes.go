package config

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the config feature.
func RegisterRoutes(app *fiber.App, configManager *Manager) {
	handler := NewHandler(configManager)
	app.Get("/config", handler.GetConfig)
	app.Post("/config", handler.UpdateConfig)
}
