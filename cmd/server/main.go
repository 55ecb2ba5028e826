package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/config"
	"github.com/benbeisheim/checkers-backend/internal/logging"
	"github.com/benbeisheim/checkers-backend/internal/server"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"go.uber.org/zap"
)

const gracefulShutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize services
	gameManager := service.NewGameManager(cfg.SessionTTL, logger)
	gameService := service.NewGameService(gameManager)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go gameManager.RunSweeper(sweepCtx, cfg.SweepInterval)

	app := server.NewApp(cfg, gameService, logger)

	go func() {
		logger.Info("checkers server starting",
			zap.String("addr", cfg.Addr()),
			zap.Strings("allow_origins", cfg.AllowOrigins),
			zap.Duration("session_ttl", cfg.SessionTTL),
			zap.Int("rate_limit", cfg.RateLimit),
			zap.Bool("dev", cfg.Dev),
		)
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Error("listen failed", zap.Error(err))
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopSweep()
	// closing the sockets first lets the websocket handlers return
	gameManager.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
