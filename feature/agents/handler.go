package agents

import (
	"errors"

	"valortracker/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the agent catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the agent routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/agents")
	group.Get("/", h.HandleList)
	group.Post("/refresh", h.HandleRefresh)
}

// HandleList returns the agent catalog.
// @Summary List Agents
// @Description List playable agents. The catalog is fetched from valorant-api.com when empty.
// @Tags agents
// @Produce json
// @Success 200 {array} models.Agent "Agents"
// @Failure 502 {object} map[string]string "Catalog source unavailable"
// @Router /agents [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	agents, err := h.service.List(c.UserContext())
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrCatalogUnavailable) {
			status = fiber.StatusBadGateway
		}
		l.Error("Agent listing failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(agents)
}

// HandleRefresh clears the stored catalog.
// @Summary Refresh Agents
// @Description Delete the stored catalog so the next listing refetches it.
// @Tags agents
// @Produce json
// @Success 200 {object} map[string]interface{} "Cleared"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /agents/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	n, err := h.service.Refresh(c.UserContext())
	if err != nil {
		l.Error("Agent refresh failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "agent catalog cleared", "deleted": n})
}
