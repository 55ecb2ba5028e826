package model

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/ws"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections watching a specific game
type GameConnections struct {
	connections map[string]Conn // connID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game is one hot-seat session: an engine plus everyone watching it.
// All input goes through mu, one click at a time.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *Engine
	connections *GameConnections
	lastActive  time.Time
	logger      *zap.Logger
}

func NewGame(id string, logger *zap.Logger) *Game {
	return &Game{
		ID:          id,
		engine:      NewEngine(),
		connections: NewGameConnections(),
		lastActive:  time.Now(),
		logger:      logger.With(zap.String("game_id", id)),
	}
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.engine.State()
}

// Click applies one square click and pushes the result to every watcher.
// The returned error is the rejection reason, if the click changed nothing.
func (g *Game) Click(pos Position) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastActive = time.Now()
	before := g.engine.Turn()
	state := g.engine.Apply(pos)
	rejection := g.engine.Rejection()

	if rejection != nil {
		g.logger.Debug("click rejected",
			zap.Stringer("square", pos),
			zap.String("phase", string(state.Phase)),
			zap.Error(rejection),
		)
	} else if state.LastMove != nil && state.Turn != before {
		g.logger.Info("move sequence complete",
			zap.String("by", before.String()),
			zap.Stringer("to", state.LastMove.To),
			zap.Int("captured_by_red", len(state.CapturedByRed)),
			zap.Int("captured_by_black", len(state.CapturedByBlack)),
		)
	}
	if state.Winner != "" && rejection == nil {
		g.logger.Info("game over", zap.String("winner", state.Winner.String()))
	}

	g.broadcastState(state)
	return state, rejection
}

func (g *Game) Restart() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastActive = time.Now()
	g.engine.Restart()
	state := g.engine.State()
	g.logger.Info("game restarted")
	g.broadcastState(state)
	return state
}

func (g *Game) LastActive() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.lastActive
}

func (g *Game) RegisterConnection(connID string, conn Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.connections.mu.Lock()
	g.connections.connections[connID] = conn
	g.connections.mu.Unlock()
	g.logger.Debug("connection registered", zap.String("conn_id", connID))

	g.lastActive = time.Now()
	g.broadcastState(g.engine.State())
}

func (g *Game) UnregisterConnection(connID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[connID]; exists {
		delete(g.connections.connections, connID)
		g.logger.Debug("connection unregistered", zap.String("conn_id", connID))
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	return len(g.connections.connections)
}

// Close drops every watcher; used when the session is discarded.
func (g *Game) Close() {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for connID, conn := range g.connections.connections {
		if err := conn.Close(); err != nil {
			g.logger.Debug("close connection", zap.String("conn_id", connID), zap.Error(err))
		}
		delete(g.connections.connections, connID)
	}
}

// broadcastState writes under the connections lock so that frames to a single
// connection never interleave.
func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		g.logger.Error("marshal game state", zap.Error(err))
		return
	}
	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for connID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			g.logger.Warn("send state failed, dropping connection",
				zap.String("conn_id", connID),
				zap.Error(err),
			)
			delete(g.connections.connections, connID)
		}
	}
}
