// Package server wires the controllers into a fiber application.
package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/api"
	"github.com/benbeisheim/checkers-backend/internal/config"
	"github.com/benbeisheim/checkers-backend/internal/controller"
	"github.com/benbeisheim/checkers-backend/internal/middleware"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

func NewApp(cfg config.Config, gameService *service.GameService, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: controller.ErrorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	gameController := controller.NewGameController(gameService, log)
	wsController := controller.NewWebSocketController(gameService, log)

	app.Get("/health", gameController.Health)

	// WebSocket route
	app.Get("/ws/game/:gameId",
		middleware.EnsureGameID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         cfg.AllowOrigins,
		}),
	)

	// REST routes
	apiGroup := app.Group("/api")
	if cfg.RateLimit > 0 {
		apiGroup.Use(rateLimiter(cfg.RateLimit))
	}

	gameRoutes := apiGroup.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", middleware.EnsureGameID(), gameController.GetGameState)
	gameRoutes.Delete("/:gameId", middleware.EnsureGameID(), gameController.DeleteGame)
	gameRoutes.Post("/:gameId/click",
		middleware.EnsureGameID(),
		middleware.ValidateBody[api.ClickRequest](),
		gameController.Click,
	)
	gameRoutes.Post("/:gameId/restart", middleware.EnsureGameID(), gameController.Restart)

	return app
}

func rateLimiter(perSecond int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perSecond,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(api.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    api.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", perSecond),
			})
		},
	})
}
