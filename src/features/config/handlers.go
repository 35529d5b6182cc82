package config

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

// Handler is the handler for the config feature.
type Handler struct {
	configManager *Manager
}

// NewHandler creates a new handler for the config feature.
func NewHandler(configManager *Manager) *Handler {
	return &Handler{
		configManager: configManager,
	}
}

// GetConfig renders the running configuration as yaml (default) or json.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	format := c.Query("fmt", "yaml")
	slog.Debug("GetConfig handler called", "format", format)

	switch format {
	case "yaml":
		c.Set("Content-Type", "text/yaml")
		return c.SendString(h.configManager.GetYAML())
	case "json":
		c.Set("Content-Type", "application/json")
		return c.SendString(h.configManager.GetJSON())
	default:
		return c.Status(fiber.StatusBadRequest).SendString("Invalid format. Use 'json' or 'yaml'")
	}
}

// UpdateConfig decodes a YAML body over the running configuration, validates
// it and persists it to the loaded file. Server settings are kept as they
// are, since the listener is already bound.
func (h *Handler) UpdateConfig(c *fiber.Ctx) error {
	slog.Info("Configuration update requested")

	current := h.configManager.Get()
	next := *current
	next.Watch.Paths = append([]string(nil), current.Watch.Paths...)
	if err := yaml.Unmarshal(c.Body(), &next); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid yaml: " + err.Error()})
	}
	next.Server = current.Server

	if err := h.configManager.Update(&next); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if path := h.configManager.Path(); path != "" {
		if err := h.configManager.Save(path); err != nil {
			return err
		}
	}

	c.Set("Content-Type", "text/yaml")
	return c.SendString(h.configManager.GetYAML())
}
