// Package config handles application configuration from environment variables.
package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/zerr"
)

// ErrInvalid is returned for configuration that parses but cannot be used.
var ErrInvalid = zerr.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`

	Catalog CatalogConfig
	Cache   CacheConfig
	Search  SearchConfig
	Booking BookingConfig
}

// CatalogConfig points at the remote catalog service.
type CatalogConfig struct {
	URL     string        `env:"CATALOG_URL" envDefault:"http://localhost:9001"`
	Timeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"2s"`
}

// CacheConfig holds the default cache policy.
type CacheConfig struct {
	StaleAfter time.Duration `env:"CACHE_STALE_AFTER" envDefault:"30s"`
	Retention  time.Duration `env:"CACHE_RETENTION" envDefault:"5m"`
	GCInterval time.Duration `env:"CACHE_GC_INTERVAL" envDefault:"1m"`
}

// SearchConfig tunes search sessions.
type SearchConfig struct {
	Debounce    time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"15m"`
}

// BookingConfig limits booking and reservation submissions per client.
type BookingConfig struct {
	RateLimit  int           `env:"BOOKING_RATE_LIMIT" envDefault:"5"`
	RateWindow time.Duration `env:"BOOKING_RATE_WINDOW" envDefault:"1m"`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given variables only.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, zerr.Wrap(err, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot run with.
func (c Config) Validate() error {
	durations := []struct {
		name string
		v    time.Duration
	}{
		{"SHUTDOWN_TIMEOUT", c.ShutdownTimeout},
		{"REQUEST_TIMEOUT", c.RequestTimeout},
		{"CATALOG_TIMEOUT", c.Catalog.Timeout},
		{"CACHE_RETENTION", c.Cache.Retention},
		{"CACHE_GC_INTERVAL", c.Cache.GCInterval},
		{"SEARCH_DEBOUNCE", c.Search.Debounce},
		{"SESSION_IDLE_TIMEOUT", c.Search.IdleTimeout},
		{"BOOKING_RATE_WINDOW", c.Booking.RateWindow},
	}
	for _, d := range durations {
		if d.v <= 0 {
			return zerr.With(ErrInvalid, "field", d.name)
		}
	}
	if c.Cache.StaleAfter < 0 {
		return zerr.With(ErrInvalid, "field", "CACHE_STALE_AFTER")
	}
	if c.Booking.RateLimit < 1 {
		return zerr.With(ErrInvalid, "field", "BOOKING_RATE_LIMIT")
	}
	if c.Catalog.URL == "" {
		return zerr.With(ErrInvalid, "field", "CATALOG_URL")
	}
	return nil
}
