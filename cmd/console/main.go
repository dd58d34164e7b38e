package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"qrmenu/internal/config"
	"qrmenu/internal/database"
	"qrmenu/internal/handler"
	"qrmenu/internal/mw"
	"qrmenu/internal/orderview"
	"qrmenu/internal/service"
	"qrmenu/internal/session"
	"qrmenu/internal/worker"
)

const controllerIdle = 30 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.New()
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

	if err := run(cfg); err != nil {
		slog.Error("console failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, jobs, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Services
	api := service.NewClient(cfg.APIAddress, cfg.APITimeout)
	registry := orderview.NewRegistry(func(credential string) *orderview.Controller {
		orders := api.Orders(credential)
		return orderview.New(orders, orders, api.QR(credential))
	})
	jobs = append(jobs, worker.ControllerJob(registry, controllerIdle))

	// Worker
	sweeper := worker.NewSweeper(cfg.SweepInterval, jobs...)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.CSRFKey != "" {
		r.Use(mw.CSRF([]byte(cfg.CSRFKey), cfg.SecureCookies))
	} else {
		slog.Warn("csrf protection disabled, form posts rely on SameSite=Lax only; set CSRF_KEY to enable it")
	}
	r.Use(mw.Session(session.NewResolver(store), mw.SessionOptions{
		Secure: cfg.SecureCookies,
		MaxAge: cfg.SessionTTL,
	}))

	handler.Register(r, handler.Deps{
		Accounts:    api,
		Store:       store,
		Controllers: registry,
		Listers:     func(credential string) handler.OrderLister { return api.Orders(credential) },
		QRWait:      cfg.QRWait,
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.APITimeout + cfg.QRWait + 10*time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sweeper.Start(gctx)
		return nil
	})
	g.Go(func() error {
		slog.Info("starting server", "addr", cfg.RunAddress, "api", cfg.APIAddress, "sessions", cfg.SessionBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShut()
		if err := srv.Shutdown(ctxShut); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err = g.Wait()
	registry.Wait()
	slog.Info("server stopped")
	return err
}

// openStore connects the configured session backend. The returned jobs
// collect its expired sessions, if the backend needs that.
func openStore(ctx context.Context, cfg *config.Config) (session.Store, []worker.Job, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return session.NewRedisStore(rdb, cfg.SessionTTL), nil, func() { _ = rdb.Close() }, nil

	case config.BackendPostgres:
		db, err := database.NewDB(ctx, cfg.DatabaseURI)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		if err := database.InitSchema(ctx, db); err != nil {
			database.CloseDB(db)
			return nil, nil, nil, err
		}
		store := session.NewPostgresStore(db)
		return store, []worker.Job{worker.SessionJob(store, cfg.SessionTTL)}, func() { database.CloseDB(db) }, nil
	}

	return session.NewMemoryStore(), nil, func() {}, nil
}
