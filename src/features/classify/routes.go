package classify

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the classify routes with the Fiber app.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	api := app.Group("/api")
	api.Post("/classify", handler.PostClassify)
	api.Get("/flags", handler.GetFlags)
}
