package controller

import (
	"errors"

	"github.com/benbeisheim/checkers-backend/internal/api"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	return &GameController{gameService: gameService, logger: logger}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, state, err := gc.gameService.CreateGame()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(api.CreateGameResponse{
		GameID: gameID,
		State:  state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Locals("gameID").(string)

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(gameState)
}

// Click answers 200 for every well-formed click, legal or not; the state
// shows what happened.
func (gc *GameController) Click(c *fiber.Ctx) error {
	gameID := c.Locals("gameID").(string)
	req := c.Locals("body").(*api.ClickRequest)

	gameState, err := gc.gameService.HandleClick(gameID, req.Position())
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) Restart(c *fiber.Ctx) error {
	gameID := c.Locals("gameID").(string)

	gameState, err := gc.gameService.RestartGame(gameID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Locals("gameID").(string)

	if err := gc.gameService.DeleteGame(gameID); err != nil {
		return gc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) Health(c *fiber.Ctx) error {
	return c.JSON(api.HealthResponse{
		Status:      "ok",
		ActiveGames: gc.gameService.ActiveGames(),
	})
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrGameNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(api.ErrorResponse{
			Error: "game not found",
			Code:  api.ErrGameNotFound,
		})
	}

	gc.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse{
		Error: "internal error",
		Code:  api.ErrInternalError,
	})
}

// ErrorHandler is the app-wide fallback for errors no handler turned into a
// response (unknown routes, panics caught by recover, fiber.Error values).
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		resp := api.ErrorResponse{Error: err.Error(), Code: api.ErrInvalidRequest}
		switch {
		case code == fiber.StatusNotFound:
			resp.Code = api.ErrNotFound
		case code == fiber.StatusMethodNotAllowed:
			resp.Code = api.ErrMethodNotAllowed
		case code >= fiber.StatusInternalServerError:
			logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			resp = api.ErrorResponse{Error: "internal error", Code: api.ErrInternalError}
		}
		return c.Status(code).JSON(resp)
	}
}
