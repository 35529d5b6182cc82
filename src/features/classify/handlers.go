package classify

import (
	"errors"
	"log/slog"

	"github.com/contre95/fsbridge/src/fsevent"
	"github.com/gofiber/fiber/v2"
)

// EventRequest is one raw event. Names, when present, replaces Flags.
type EventRequest struct {
	Path  string   `json:"path"`
	Flags uint32   `json:"flags"`
	Names []string `json:"names"`
}

// BatchRequest is the body of POST /api/classify.
type BatchRequest struct {
	Events []EventRequest `json:"events"`
}

// BatchResponse is returned by POST /api/classify.
type BatchResponse struct {
	Batch   string   `json:"batch"`
	Results []Result `json:"results"`
}

// FlagResponse is one entry of GET /api/flags.
type FlagResponse struct {
	Name  string `json:"name"`
	Value uint32 `json:"value"`
}

var errEmptyPath = errors.New("event path is required")

// Handler handles HTTP requests for the classify feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new classify handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PostClassify classifies a batch of raw events.
func (h *Handler) PostClassify(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Debug("Invalid classify body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	events, err := toEvents(req.Events)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	batchID, results, err := h.service.ClassifyBatch(c.UserContext(), events)
	if err != nil {
		return err
	}
	return c.JSON(BatchResponse{Batch: batchID, Results: results})
}

// GetFlags lists the known flag names and bit values.
func (h *Handler) GetFlags(c *fiber.Ctx) error {
	known := fsevent.KnownFlags()
	out := make([]FlagResponse, 0, len(known))
	for _, fn := range known {
		out = append(out, FlagResponse{Name: fn.Name, Value: uint32(fn.Value)})
	}
	return c.JSON(out)
}

func toEvents(reqs []EventRequest) ([]fsevent.FileChangeEvent, error) {
	events := make([]fsevent.FileChangeEvent, 0, len(reqs))
	for _, r := range reqs {
		if r.Path == "" {
			return nil, errEmptyPath
		}
		flags := fsevent.Flags(r.Flags)
		if len(r.Names) > 0 {
			parsed, err := fsevent.ParseFlags(r.Names)
			if err != nil {
				return nil, err
			}
			flags = parsed
		}
		events = append(events, fsevent.NewEvent(r.Path, flags))
	}
	return events, nil
}
