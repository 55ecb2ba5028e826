package middleware

import (
	"github.com/benbeisheim/checkers-backend/internal/api"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnsureGameID rejects requests whose :gameId is not a UUID and stores the
// normalized id in Locals("gameID").
func EnsureGameID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("gameId")
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse{
				Error:   "game ID must be a UUID",
				Code:    api.ErrInvalidGameID,
				Details: raw,
			})
		}

		c.Locals("gameID", id.String())
		return c.Next()
	}
}
