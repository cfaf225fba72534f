package players

import (
	"errors"

	"valortracker/core/logger"
	"valortracker/feature/matches/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for players.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the player routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/players")
	group.Get("/", h.HandleList)
	group.Get("/:name/:tag", h.HandleResolve)
}

// HandleResolve resolves a display name and tag to a player.
// @Summary Resolve Player
// @Description Look the account up at the provider and store or refresh the player.
// @Tags players
// @Produce json
// @Param name path string true "Display name"
// @Param tag path string true "Display tag"
// @Success 200 {object} models.Player "Player"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Provider rejected the request"
// @Failure 503 {object} map[string]string "Provider unavailable"
// @Router /players/{name}/{tag} [get]
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	p, err := h.service.Resolve(c.UserContext(), c.Params("name"), c.Params("tag"))
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(p)
}

// HandleList lists the known players.
// @Summary List Players
// @Description List every player resolved so far.
// @Tags players
// @Produce json
// @Success 200 {array} models.Player "Players"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /players [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	players, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, l, err)
	}
	if players == nil {
		players = []models.Player{}
	}
	return c.JSON(players)
}

func respondError(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	body := fiber.Map{"error": err.Error()}

	var rfe *models.RemoteFetchError
	switch {
	case errors.Is(err, ErrInvalidName):
		status = fiber.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.As(err, &rfe):
		switch {
		case rfe.Transient():
			status = fiber.StatusServiceUnavailable
			body["retryable"] = true
		case rfe.Kind == models.KindAuth:
			status = fiber.StatusBadGateway
		case rfe.Kind == models.KindNotFound:
			status = fiber.StatusNotFound
		}
	}

	if status >= fiber.StatusInternalServerError {
		l.Error("Player request failed", zap.Error(err))
	} else {
		l.Info("Player request failed", zap.Error(err))
	}
	return c.Status(status).JSON(body)
}
