// Package query resolves cached reads against a cache.Store, starting or
// joining remote fetches when entries are missing or stale.
package query

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/alex-user-go/tourguide/internal/cache"
	"github.com/alex-user-go/tourguide/internal/obs"
	"github.com/alex-user-go/tourguide/internal/querykey"
)

var (
	// ErrDisabled is returned by Fetch when the query is not enabled.
	ErrDisabled = zerr.New("query is disabled")

	// ErrTypeMismatch is reported when a key's cached data is not of the
	// type the reader asked for. A key is bound to one data type.
	ErrTypeMismatch = zerr.New("cached data has a different type")
)

// Producer performs the remote read for one key.
type Producer[T any] func(ctx context.Context) (T, error)

// Client is the fetch orchestrator. One Client is shared by every reader
// of a Store.
type Client struct {
	store    *cache.Store
	group    singleflight.Group
	defaults cache.Policy
	metrics  *obs.Metrics
	logger   *slog.Logger
	now      func() time.Time

	// ctx outlives individual callers; producers run on it.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a Client over store. defaults apply to reads that do
// not override them.
func NewClient(store *cache.Store, defaults cache.Policy, metrics *obs.Metrics, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		store:    store,
		defaults: defaults,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Store returns the underlying cache.
func (c *Client) Store() *cache.Store {
	return c.store
}

// Close cancels every running producer. Results that arrive afterwards
// are still written to the store.
func (c *Client) Close() {
	c.cancel()
}

// Resolve returns the cached state for key and starts or joins a fetch
// when the entry is missing or stale. It never blocks on the producer.
func Resolve[T any](c *Client, key querykey.Key, producer Producer[T], opts ...Option) Result[T] {
	o := c.options(opts)
	if !o.enabled {
		return Result[T]{Key: key, Status: cache.StatusIdle}
	}
	return resolve(c, key, producer, o, false)
}

// Fetch resolves key and waits for any fetch it started or joined.
func Fetch[T any](ctx context.Context, c *Client, key querykey.Key, producer Producer[T], opts ...Option) (T, error) {
	var zero T

	o := c.options(opts)
	if !o.enabled {
		return zero, zerr.With(ErrDisabled, "domain", key.Domain())
	}

	res, err := resolve(c, key, producer, o, false).Wait(ctx)
	if err != nil {
		return zero, err
	}
	if res.Status == cache.StatusError {
		return res.Data, res.Err
	}
	return res.Data, nil
}

func resolve[T any](c *Client, key querykey.Key, producer Producer[T], o options, force bool) Result[T] {
	t := c.store.Begin(key, o.policy, force)

	res := newResult(c, t.Entry, key, producer, o)

	if !t.Fetch {
		c.metrics.CacheHit(key.Domain())
		return res
	}

	c.metrics.CacheMiss(key.Domain())
	if t.Started {
		c.logger.Debug("fetch started",
			"domain", key.Domain(),
			"key", key.Hash(),
			"generation", t.Gen,
			"stale_data", t.Entry.HasData,
		)
	}

	done := join(c, key, t.Gen, producer)
	res.wait = func(ctx context.Context) (Result[T], error) {
		return await(ctx, c, key, producer, o, done)
	}
	return res
}

// join attaches to the flight of generation gen, running the producer if
// this is the first caller to reach it.
func join[T any](c *Client, key querykey.Key, gen uint64, producer Producer[T]) <-chan struct{} {
	ch := c.group.DoChan(flightKey(key, gen), func() (any, error) {
		run(c, key, gen, producer)
		return nil, nil
	})

	done := make(chan struct{})
	go func() {
		<-ch
		close(done)
	}()
	return done
}

func run[T any](c *Client, key querykey.Key, gen uint64, producer Producer[T]) {
	if !c.store.Claim(key, gen) {
		handoff(c, key, gen, producer)
		return
	}

	start := c.now()
	data, err := producer(c.ctx)
	elapsed := c.now().Sub(start)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.FetchDone(key.Domain(), outcome, elapsed)

	var value any = data
	if err != nil {
		value = nil
	}
	if !c.store.Settle(key, gen, value, err) {
		c.metrics.FetchDiscarded(key.Domain())
		c.logger.Debug("discarded superseded fetch",
			"domain", key.Domain(),
			"key", key.Hash(),
			"generation", gen,
		)
		handoff(c, key, gen, producer)
		return
	}

	if err != nil {
		c.logger.Warn("fetch failed",
			"domain", key.Domain(),
			"key", key.Hash(),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
	}
}

// handoff starts the flight that superseded gen. Nothing else may be
// waiting on the key, and an unclaimed flight never settles on its own.
func handoff[T any](c *Client, key querykey.Key, gen uint64, producer Producer[T]) {
	if next, ok := c.store.Flight(key); ok && next > gen {
		join(c, key, next, producer)
	}
}

// await blocks until key has no running flight, following newer flights
// that superseded the one done belongs to.
func await[T any](ctx context.Context, c *Client, key querykey.Key, producer Producer[T], o options, done <-chan struct{}) (Result[T], error) {
	snapshot := func() Result[T] {
		entry, ok := c.store.Get(key)
		if !ok {
			entry = cache.Entry{Key: key}
		}
		return newResult(c, entry, key, producer, o)
	}

	for {
		select {
		case <-done:
		case <-ctx.Done():
			return snapshot(), context.Cause(ctx)
		}

		gen, inflight := c.store.Flight(key)
		if !inflight {
			return snapshot(), nil
		}
		done = join(c, key, gen, producer)
	}
}

func flightKey(key querykey.Key, gen uint64) string {
	return key.ID() + "#" + strconv.FormatUint(gen, 10)
}
