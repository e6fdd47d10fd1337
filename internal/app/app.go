package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/alex-user-go/tourguide/internal/cache"
	"github.com/alex-user-go/tourguide/internal/config"
	"github.com/alex-user-go/tourguide/internal/handler"
	"github.com/alex-user-go/tourguide/internal/mutation"
	"github.com/alex-user-go/tourguide/internal/obs"
	"github.com/alex-user-go/tourguide/internal/query"
	"github.com/alex-user-go/tourguide/internal/ratelimit"
	"github.com/alex-user-go/tourguide/internal/remote"
)

// App is the wired backend-for-frontend.
type App struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *cache.Store
	client  *query.Client
	limiter *ratelimit.Limiter
	handler *handler.Handler
	routes  http.Handler
}

// New wires every component for cfg.
func New(cfg config.Config, logger *slog.Logger) *App {
	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(reg)

	// Initialize cache and query client
	store := cache.New(cfg.Cache.GCInterval, metrics)
	client := query.NewClient(store, cache.Policy{
		StaleAfter: cfg.Cache.StaleAfter,
		Retention:  cfg.Cache.Retention,
	}, metrics, logger)
	exec := mutation.NewExecutor(store, metrics, logger)

	// Initialize remote catalog client
	svc := remote.NewHTTPClient(cfg.Catalog.URL, cfg.Catalog.Timeout)

	// Initialize rate limiter for bookings and reservations
	limiter := ratelimit.New(cfg.Booking.RateLimit, cfg.Booking.RateWindow)

	h := handler.New(client, exec, svc, limiter, metrics, logger, handler.Options{
		RequestTimeout:     cfg.RequestTimeout,
		Debounce:           cfg.Search.Debounce,
		SessionIdleTimeout: cfg.Search.IdleTimeout,
	})

	return &App{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		client:  client,
		limiter: limiter,
		handler: h,
		routes:  h.Routes(),
	}
}

// Handler returns the HTTP handler of the public API.
func (a *App) Handler() http.Handler {
	return a.routes
}

// Close releases sessions, running fetches and background workers.
func (a *App) Close() {
	a.handler.Close()
	a.client.Close()
	a.store.Close()
	a.limiter.Close()
}

// Serve listens on the configured address until ctx is done, then shuts
// the server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.Addr,
		Handler:      a.routes,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: a.cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting server", "addr", srv.Addr, "catalog_url", a.cfg.Catalog.URL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "server error")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		// Graceful shutdown
		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(err, "server shutdown error")
		}
		return nil
	})

	err := g.Wait()
	a.Close()
	if err != nil {
		a.logger.Error("server stopped with error", "error", err)
		return err
	}

	a.logger.Info("server stopped")
	return nil
}

// Run loads the configuration and serves until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return New(cfg, logger).Serve(ctx)
}
