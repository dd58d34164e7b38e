package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"qrmenu/internal/config"
	"qrmenu/internal/devapi"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewDevAPI()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger, err := config.Logger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	api := devapi.New(cfg.JWTSecret)
	if cfg.Seed {
		if err := api.Seed(); err != nil {
			slog.Error("failed to seed", "error", err)
			os.Exit(1)
		}
		slog.Info("seeded demo accounts", "password", devapi.SeedPassword)
	}

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      api.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting dev api", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
