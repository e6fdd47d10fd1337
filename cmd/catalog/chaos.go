package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// chaos delays every request around a base latency and fails a share of
// them, so the caching layer can be exercised against a flaky upstream.
type chaos struct {
	mu          sync.Mutex
	rng         *rand.Rand
	latency     time.Duration
	failureRate float64
	logger      *slog.Logger
}

func newChaos(latency time.Duration, failureRate float64, seed int64, logger *slog.Logger) *chaos {
	return &chaos{
		rng:         rand.New(rand.NewSource(seed)),
		latency:     latency,
		failureRate: failureRate,
		logger:      logger,
	}
}

// roll returns the delay for one request and whether it fails.
func (c *chaos) roll() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var delay time.Duration
	// Between half and one and a half times the base latency.
	if c.latency > 0 {
		delay = c.latency/2 + time.Duration(c.rng.Int63n(int64(c.latency)))
	}
	return delay, c.rng.Float64() < c.failureRate
}

func (c *chaos) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}

		delay, fail := c.roll()
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if fail {
			c.logger.Warn("simulated failure", "method", r.Method, "path", r.URL.Path)
			http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}
