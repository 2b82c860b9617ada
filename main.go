package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sanskar1309/fitnest-fullstack/cliparse"
	"github.com/sanskar1309/fitnest-fullstack/db"
	"github.com/sanskar1309/fitnest-fullstack/metrics"
	"github.com/sanskar1309/fitnest-fullstack/middleware"
	"github.com/sanskar1309/fitnest-fullstack/router"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("fitnest exited", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// .env must be loaded before flags fall back to the environment
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	if cfg.SeedDir != "" {
		counts, err := db.Seed(ctx, conn, os.DirFS(cfg.SeedDir))
		if err != nil {
			return fmt.Errorf("seeding from %s: %w", cfg.SeedDir, err)
		}
		slog.Info("Catalog seeded", "dir", cfg.SeedDir, "rows", counts)
	}

	mux := router.NewRouter(conn, cfg)
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           middleware.CORS(middleware.WithRequestID(metrics.InstrumentHandler(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Listening", "port", cfg.Port)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		server.Close()
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	slog.Info("Server closed")
	return nil
}
