// service/game_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns every live session. Nothing is persisted: a session that
// sits idle longer than ttl is swept away.
type GameManager struct {
	games  map[string]*model.Game
	mu     sync.RWMutex
	ttl    time.Duration
	logger *zap.Logger
}

func NewGameManager(ttl time.Duration, logger *zap.Logger) *GameManager {
	return &GameManager{
		games:  make(map[string]*model.Game),
		ttl:    ttl,
		logger: logger,
	}
}

// RunSweeper removes idle sessions every interval until ctx is done.
func (gm *GameManager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := gm.sweep(now); n > 0 {
				gm.logger.Info("swept idle games", zap.Int("removed", n), zap.Int("remaining", gm.Count()))
			}
		}
	}
}

// sweep drops games idle for at least ttl. Activity is read without holding
// gm.mu, so a game busy broadcasting never blocks lookups of the others.
func (gm *GameManager) sweep(now time.Time) int {
	gm.mu.RLock()
	games := make(map[string]*model.Game, len(gm.games))
	for id, game := range gm.games {
		games[id] = game
	}
	gm.mu.RUnlock()

	var idle []string
	for id, game := range games {
		if now.Sub(game.LastActive()) >= gm.ttl {
			idle = append(idle, id)
		}
	}
	if len(idle) == 0 {
		return 0
	}

	var removed []*model.Game
	gm.mu.Lock()
	for _, id := range idle {
		if game, ok := gm.games[id]; ok && game == games[id] {
			delete(gm.games, id)
			removed = append(removed, game)
		}
	}
	gm.mu.Unlock()

	for _, game := range removed {
		game.Close()
	}
	return len(removed)
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	game := model.NewGame(gameID, gm.logger)
	gm.games[gameID] = game
	gm.logger.Info("game created", zap.String("game_id", gameID))
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return game, nil
}

func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	game, exists := gm.games[gameID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	game.Close()
	delete(gm.games, gameID)
	gm.logger.Info("game deleted", zap.String("game_id", gameID))
	return nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return len(gm.games)
}

// Shutdown closes every connection and forgets all sessions.
func (gm *GameManager) Shutdown() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, game := range gm.games {
		game.Close()
		delete(gm.games, id)
	}
}
