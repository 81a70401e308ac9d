// cmd/vietvibe-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doduclong204/vietvibe/pkg/config"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/game"
	"github.com/doduclong204/vietvibe/pkg/logger"
	"github.com/doduclong204/vietvibe/pkg/notify"
	"github.com/doduclong204/vietvibe/pkg/web"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	if err := config.LoadConfig("config.yaml"); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Configure(logger.Options{
		Level:  config.AppConfig.Logging.Level,
		File:   config.AppConfig.Logging.File,
		Format: config.AppConfig.Logging.Format,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if err := db.InitDB(config.AppConfig.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	notifier, err := notify.New(config.AppConfig.Telegram)
	if err != nil {
		logger.Error("failed to create notifier", "error", err)
		os.Exit(1)
	}

	go db.StartTokenCleanup(ctx, db.TokenCleanupInterval)
	go game.StartSessionSweeper(ctx, game.SessionSweepInterval)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.AppConfig.Server.Port),
		Handler: web.NewRouter(notifier),
	}

	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
