package main

import (
	"log/slog"
	"net/http"
	"os"

	"tracker/internal/config"
	"tracker/internal/router"
	"tracker/internal/session"
	"tracker/internal/storage"
	"tracker/internal/storage/postgres"
	"tracker/internal/storage/sqlite"
	"tracker/internal/web"
	"tracker/pkg/logger/handlers/slogpretty"
	"tracker/pkg/logger/sl"

	"github.com/joho/godotenv"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := setupLogger(cfg.Env)

	log.Info("starting tracker service", slog.String("env", cfg.Env))
	log.Debug("debug log enabled")

	store, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.CookieName)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Error("failed to init templates", sl.Err(err))
		os.Exit(1)
	}

	handler := router.New(log, store, sessions, renderer)

	log.Info("starting server", slog.String("address", cfg.Address))
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("failed to start server", sl.Err(err))
	}
}

func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return postgres.New(cfg.Storage.DSN)
	default:
		return sqlite.New(cfg.Storage.Path)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}
	handler := opts.NewPrettyHandler(os.Stdout)
	return slog.New(handler)
}
