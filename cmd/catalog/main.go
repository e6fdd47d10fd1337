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

	"github.com/caarlos0/env/v11"

	"github.com/alex-user-go/tourguide/internal/obs"
	"github.com/alex-user-go/tourguide/internal/remote"
)

type config struct {
	Port        string        `env:"PORT" envDefault:"9001"`
	Latency     time.Duration `env:"CATALOG_LATENCY" envDefault:"0s"`
	FailureRate float64       `env:"CATALOG_FAILURE_RATE" envDefault:"0"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := env.ParseAs[config]()
	if err != nil {
		logger.Error("failed to parse environment", "error", err)
		os.Exit(1)
	}

	// Setup routes
	routes := remote.NewCatalogServer(remote.NewCatalog(), logger).Routes()
	routes.Get("/healthz", obs.HealthHandler(logger))

	c := newChaos(cfg.Latency, cfg.FailureRate, time.Now().UnixNano(), logger)

	// Configure server
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      c.Wrap(routes),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("catalog listening",
			"addr", addr,
			"latency", cfg.Latency,
			"failure_rate", cfg.FailureRate,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
