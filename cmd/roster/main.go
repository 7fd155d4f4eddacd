// main is the entry point of the roster command.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the storage backend and load the roster
//  4. Register all commands
//  5. Run the requested command and exit with its status
//
// RUNNING:
//
//	go run ./cmd/roster --config=config/local.yaml add a1 "Asha Rao" 20 CS 8.5
//	go run ./cmd/roster --config=config/local.yaml top 3
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/roster stats
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/roster/internal/cli"
	"github.com/aanand-mishra/roster/internal/cli/handlers/report"
	"github.com/aanand-mishra/roster/internal/cli/handlers/student"
	"github.com/aanand-mishra/roster/internal/config"
	"github.com/aanand-mishra/roster/internal/insight"
	"github.com/aanand-mishra/roster/internal/roster"
	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/storage/sqlite"
	"github.com/aanand-mishra/roster/internal/storage/textfile"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs go to stderr; stdout carries the JSON result only.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	// ── 3. Storage ────────────────────────────────────────────────────────
	// The store only sees the storage.Storage interface, so the backend
	// is chosen here and nowhere else.
	backend, err := openBackend(cfg)
	if err != nil {
		// Keep going with an empty roster; every save will report the
		// open failure.
		log.Error("failed to open storage, starting with an empty roster",
			slog.String("backend", cfg.Backend),
			slog.String("error", err.Error()))
		backend = storage.Unavailable(err)
	}
	defer backend.Close()

	store := roster.New(backend, log)
	store.Load()

	log.Debug("roster ready",
		slog.String("backend", cfg.Backend),
		slog.String("path", cfg.StoragePath),
		slog.Int("records", store.Len()))

	// ── 4. Register Commands ──────────────────────────────────────────────
	// Ctrl+C cancels a running insight request instead of killing the
	// process mid-write.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := &insight.Command{
		Path:    cfg.Generator.Command,
		Args:    cfg.Generator.Args,
		Timeout: cfg.Generator.Timeout,
	}
	insights := insight.NewService(store, generator, log)

	app := cli.NewApp(log)

	app.Add(
		student.New(store),
		student.GetList(store),
		student.GetByID(store),
		student.Update(store),
		student.Delete(store),
	)

	app.Add(
		report.Top(store),
		report.AtRisk(store),
		report.Stats(store),
		report.Courses(store),
		report.Dashboard(store),
		report.Insight(insights),
	)

	// ── 5. Run ────────────────────────────────────────────────────────────
	// flag.Args() is what remains after --config; cobra parses the rest.
	return app.Run(ctx, os.Stdout, flag.Args())
}

// openBackend returns the configured storage.Storage implementation.
func openBackend(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return textfile.New(cfg.StoragePath), nil
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
