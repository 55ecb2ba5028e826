package model

import "errors"

// Rejection reasons for a click. Apply never returns them; they end up in
// GameState.Rejection for callers that want to log or show why nothing happened.
var (
	ErrOffBoard         = errors.New("square is off the board")
	ErrNotYourPiece     = errors.New("no piece of the side to move on that square")
	ErrLightSquare      = errors.New("destination is a light square")
	ErrOccupied         = errors.New("destination is occupied")
	ErrWrongDirection   = errors.New("men only move forward")
	ErrBadDistance      = errors.New("move must be one or two diagonal squares")
	ErrNoCapture        = errors.New("jump does not pass over an opponent piece")
	ErrMustContinueJump = errors.New("the jumping piece must capture again")
	ErrGameOver         = errors.New("game is over")
)
