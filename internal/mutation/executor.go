// Package mutation runs remote writes and invalidates the cached reads of
// the domain they touch.
package mutation

import (
	"context"
	"log/slog"
	"time"

	"github.com/alex-user-go/tourguide/internal/cache"
	"github.com/alex-user-go/tourguide/internal/obs"
	"github.com/alex-user-go/tourguide/internal/querykey"
)

// Result is the outcome of one mutation.
type Result[T any] struct {
	Data T
	Err  error
	// Invalidated is the number of cache entries marked stale.
	Invalidated int
}

// OK reports whether the mutation succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Executor runs mutations against a shared cache.Store.
type Executor struct {
	store   *cache.Store
	metrics *obs.Metrics
	logger  *slog.Logger
}

// NewExecutor creates an Executor that invalidates entries of store.
func NewExecutor(store *cache.Store, metrics *obs.Metrics, logger *slog.Logger) *Executor {
	return &Executor{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Run calls op exactly once. When op succeeds every cached entry of domain
// is invalidated. Failures are returned as-is and invalidate nothing.
func Run[T any](ctx context.Context, e *Executor, domain string, op func(ctx context.Context) (T, error)) Result[T] {
	start := time.Now()
	data, err := op(ctx)
	if err != nil {
		e.metrics.Mutation(domain, "error")
		e.logger.Warn("mutation failed",
			"domain", domain,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return Result[T]{Data: data, Err: err}
	}

	n := e.store.Invalidate(querykey.InDomain(domain))
	e.metrics.Mutation(domain, "success")
	e.metrics.Invalidated(domain, n)
	e.logger.Info("mutation succeeded",
		"domain", domain,
		"invalidated", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return Result[T]{Data: data, Invalidated: n}
}
