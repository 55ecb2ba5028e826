// Package api holds the request and response bodies shared by the REST and
// WebSocket transports.
package api

import "github.com/benbeisheim/checkers-backend/internal/model"

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrInvalidGameID     = "INVALID_GAME_ID"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrUnknownMessage    = "UNKNOWN_MESSAGE"
	ErrNotFound          = "NOT_FOUND"
	ErrMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrInternalError     = "INTERNAL_ERROR"
)

// ClickRequest is a click on one square. Pointers so that row/col 0 still
// passes the required check.
type ClickRequest struct {
	Row *int `json:"row" validate:"required,min=0,max=7"`
	Col *int `json:"col" validate:"required,min=0,max=7"`
}

func (r ClickRequest) Position() model.Position {
	return model.Position{Row: *r.Row, Col: *r.Col}
}

type CreateGameResponse struct {
	GameID string          `json:"game_id"`
	State  model.GameState `json:"state"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ActiveGames int    `json:"activeGames"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
