package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/api"
	"github.com/benbeisheim/checkers-backend/internal/middleware"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// writeWait bounds a single frame write so a stalled client cannot hold the
// game lock during a broadcast.
const writeWait = 10 * time.Second

type wsConn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// lockedConn serializes writes: the game broadcasts and this controller
// replies with errors on the same connection.
type lockedConn struct {
	mu   sync.Mutex
	conn wsConn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if err := lc.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) Close() error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.Close()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Locals("gameID").(string)
	connID := c.Locals("connID").(string)
	logger := wsc.logger.With(zap.String("game_id", gameID), zap.String("conn_id", connID))
	conn := &lockedConn{conn: c}

	if err := wsc.gameService.RegisterConnection(gameID, connID, conn); err != nil {
		logger.Info("rejecting connection", zap.Error(err))
		reply(logger, conn, &api.ErrorResponse{Error: err.Error(), Code: api.ErrGameNotFound})
		if err := conn.Close(); err != nil {
			logger.Debug("close connection", zap.Error(err))
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("connection closed", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			reply(logger, conn, &api.ErrorResponse{
				Error:   "malformed message",
				Code:    api.ErrInvalidRequest,
				Details: err.Error(),
			})
			continue
		}

		if errResp := wsc.handleMessage(gameID, msg); errResp != nil {
			logger.Debug("message rejected", zap.String("type", string(msg.Type)), zap.String("code", errResp.Code))
			reply(logger, conn, errResp)
			if errResp.Code == api.ErrGameNotFound {
				return
			}
		}
	}
}

// handleMessage applies one inbound message. State changes reach the client
// through the game's broadcast, so only failures are returned.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) *api.ErrorResponse {
	var err error
	switch msg.Type {
	case ws.MessageTypeClick:
		var req api.ClickRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return &api.ErrorResponse{Error: "invalid click payload", Code: api.ErrInvalidRequest, Details: err.Error()}
		}
		if err := middleware.Validate(&req); err != nil {
			return &api.ErrorResponse{Error: "validation failed", Code: api.ErrInvalidRequest, Details: err.Error()}
		}
		_, err = wsc.gameService.HandleClick(gameID, req.Position())

	case ws.MessageTypeRestart:
		_, err = wsc.gameService.RestartGame(gameID)

	default:
		return &api.ErrorResponse{
			Error: fmt.Sprintf("unknown message type: %s", msg.Type),
			Code:  api.ErrUnknownMessage,
		}
	}

	if errors.Is(err, service.ErrGameNotFound) {
		return &api.ErrorResponse{Error: "game not found", Code: api.ErrGameNotFound}
	}
	if err != nil {
		return &api.ErrorResponse{Error: "internal error", Code: api.ErrInternalError}
	}
	return nil
}

func reply(logger *zap.Logger, conn *lockedConn, errResp *api.ErrorResponse) {
	if err := conn.WriteJSON(ws.NewError(errResp)); err != nil {
		logger.Debug("send error reply", zap.String("code", errResp.Code), zap.Error(err))
	}
}
