package hosting

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/contre95/fsbridge/src/features/classify"
	"github.com/contre95/fsbridge/src/features/config"
	"github.com/contre95/fsbridge/src/features/metrics"
	"github.com/gofiber/fiber/v2"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server. collector may be nil when metrics are disabled.
func NewServer(cfg *config.Manager, classifyService *classify.Service, collector *metrics.Collector) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).SendString(fiberErr.Message)
			}
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
		AppName:               "fsbridge",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	config.RegisterRoutes(app, cfg)
	classify.RegisterRoutes(app, classifyService)
	if collector != nil {
		metrics.RegisterRoutes(app, collector)
	}

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// App exposes the fiber app, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
