package matches

import (
	"errors"

	"valortracker/core/logger"
	"valortracker/core/tasks"
	"valortracker/core/utils"
	"valortracker/feature/matches/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for match history.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the match routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/matches")
	group.Get("/detail/:matchId", h.HandleGetScoreboard)
	group.Get("/raw/:region/:matchId", h.HandleGetRawMatch)
	group.Get("/tasks/:id", h.HandleGetTask)
	group.Post("/tasks", h.HandleSubmitTask)
	group.Post("/sync/:region/:puuid", h.HandleSync)
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/:puuid", h.HandleGetHistory)
}

// HandleGetHistory returns the synchronized match history of a player.
// @Summary Get Match History
// @Description List the player's synchronized matches, newest first. Served from cache when possible.
// @Tags matches
// @Produce json
// @Param puuid path string true "Player PUUID"
// @Param limit query int false "Maximum number of matches"
// @Success 200 {array} matches.Card "Match history"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /matches/{puuid} [get]
func (h *Handler) HandleGetHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	limit := utils.ToInt(c.Query("limit"), 0)

	cards, err := h.service.History(c.UserContext(), c.Params("puuid"), limit)
	if err != nil {
		return respondError(c, l, "History lookup failed", err)
	}
	return c.JSON(cards)
}

// HandleGetScoreboard returns one match with its full roster.
// @Summary Get Match Scoreboard
// @Description Get a stored match and every participant ordered by position.
// @Tags matches
// @Produce json
// @Param matchId path string true "Match ID"
// @Success 200 {object} matches.Scoreboard "Scoreboard"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/detail/{matchId} [get]
func (h *Handler) HandleGetScoreboard(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	board, err := h.service.Scoreboard(c.UserContext(), c.Params("matchId"))
	if err != nil {
		return respondError(c, l, "Scoreboard lookup failed", err)
	}
	return c.JSON(board)
}

// HandleGetRawMatch returns the archived remote record of a match.
// @Summary Get Raw Match
// @Description Get the raw provider JSON archived when the match was first stored.
// @Tags matches
// @Produce json
// @Param region path string true "Region code"
// @Param matchId path string true "Match ID"
// @Success 200 {object} map[string]interface{} "Raw record"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/raw/{region}/{matchId} [get]
func (h *Handler) HandleGetRawMatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.service.RawMatch(c.UserContext(), c.Params("region"), c.Params("matchId"))
	if err != nil {
		return respondError(c, l, "Raw match lookup failed", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandleSync synchronizes a player's history within the request.
// @Summary Synchronize Match History
// @Description Fetch new matches from the provider, bounded by the interactive cap.
// @Tags matches
// @Produce json
// @Param region path string true "Region code"
// @Param puuid path string true "Player PUUID"
// @Success 200 {object} matchsync.Result "Synchronization result"
// @Failure 503 {object} map[string]interface{} "Provider temporarily unavailable"
// @Router /matches/sync/{region}/{puuid} [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	res, err := h.service.SyncNow(c.UserContext(), c.Params("puuid"), c.Params("region"))
	if err != nil {
		return respondError(c, l, "Synchronization failed", err)
	}
	return c.JSON(res)
}

// HandleSubmitTask queues a background synchronization.
// @Summary Submit Background Sync
// @Description Queue a synchronization bounded by the background cap and return a task handle.
// @Tags matches
// @Accept json
// @Produce json
// @Param request body matches.SyncRequest true "Player and region"
// @Success 202 {object} map[string]string "Task handle"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /matches/tasks [post]
func (h *Handler) HandleSubmitTask(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	id, err := h.service.SubmitSync(c.UserContext(), req.PlayerID, req.Region)
	if err != nil {
		return respondError(c, l, "Task submission failed", err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"task_id": id})
}

// HandleGetTask polls a background task.
// @Summary Get Task
// @Description Get the state, progress and result of a background synchronization.
// @Tags matches
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} tasks.Task "Task"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/tasks/{id} [get]
func (h *Handler) HandleGetTask(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	task, err := h.service.Task(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, l, "Task lookup failed", err)
	}
	return c.JSON(task)
}

// HandleRefresh clears every stored match.
// @Summary Clear Stored Matches
// @Description Delete all matches and participations and invalidate cached listings.
// @Tags matches
// @Produce json
// @Success 200 {object} map[string]interface{} "Cleared"
// @Router /matches/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	n, err := h.service.Clear(c.UserContext())
	if err != nil {
		return respondError(c, l, "Clear failed", err)
	}
	return c.JSON(fiber.Map{"message": "stored matches cleared", "players": n})
}

// respondError maps the error taxonomy to HTTP statuses.
func respondError(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	body := fiber.Map{"error": err.Error()}

	var rfe *models.RemoteFetchError
	switch {
	case errors.Is(err, ErrInvalidRequest):
		status = fiber.StatusBadRequest
	case errors.Is(err, models.ErrNotFound), errors.Is(err, tasks.ErrTaskNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, tasks.ErrQueueFull):
		status = fiber.StatusServiceUnavailable
		body["retryable"] = true
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
		l.Error(msg, zap.Error(err))
	} else {
		l.Info(msg, zap.Error(err))
	}
	return c.Status(status).JSON(body)
}
