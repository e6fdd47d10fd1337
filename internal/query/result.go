package query

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/zerr"

	"github.com/alex-user-go/tourguide/internal/cache"
	"github.com/alex-user-go/tourguide/internal/querykey"
)

// Result is what a reader sees for one key. Data from the last successful
// fetch stays set while a refetch is loading and after a failed one. A
// reader whose type differs from the cached data gets ErrTypeMismatch.
type Result[T any] struct {
	Key       querykey.Key
	Data      T
	HasData   bool
	Status    cache.Status
	Err       error
	FetchedAt time.Time
	Stale     bool
	Version   uint64

	wait    func(ctx context.Context) (Result[T], error)
	refetch func() Result[T]
}

func newResult[T any](c *Client, entry cache.Entry, key querykey.Key, producer Producer[T], o options) Result[T] {
	res := Result[T]{
		Key:       key,
		Status:    entry.Status,
		Err:       entry.Err,
		FetchedAt: entry.FetchedAt,
		Stale:     entry.Stale(c.now()),
		Version:   entry.Version,
	}
	if entry.HasData {
		data, ok := entry.Data.(T)
		if !ok {
			c.logger.Error("cached data type mismatch",
				"domain", key.Domain(),
				"key", key.Hash(),
				"cached", fmt.Sprintf("%T", entry.Data),
				"want", fmt.Sprintf("%T", data),
			)
			res.Status = cache.StatusError
			res.Err = zerr.With(ErrTypeMismatch, "key", key.ID())
		}
		res.Data, res.HasData = data, ok
	}
	res.refetch = func() Result[T] {
		return resolve(c, key, producer, o, true)
	}
	return res
}

// Loading reports whether a fetch is running for the key.
func (r Result[T]) Loading() bool {
	return r.Status == cache.StatusLoading
}

// Wait blocks until the fetch this result is attached to settles and
// returns the settled state. Results that carry no running fetch are
// returned unchanged.
func (r Result[T]) Wait(ctx context.Context) (Result[T], error) {
	if r.wait == nil {
		return r, nil
	}
	return r.wait(ctx)
}

// Refetch forces a fetch regardless of staleness, joining a running one.
// It is a no-op on disabled results.
func (r Result[T]) Refetch() Result[T] {
	if r.refetch == nil {
		return r
	}
	return r.refetch()
}
