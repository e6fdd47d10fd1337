package query

import (
	"sync"

	"github.com/alex-user-go/tourguide/internal/cache"
	"github.com/alex-user-go/tourguide/internal/querykey"
)

// Observer is a live view of one key. It keeps the entry from being
// collected and publishes every state change on Updates until Close.
type Observer[T any] struct {
	client   *Client
	key      querykey.Key
	producer Producer[T]
	opts     options

	mu          sync.Mutex
	updates     chan Result[T]
	latest      Result[T]
	version     uint64
	closed      bool
	release     func()
	unsubscribe func()
}

// Watch resolves key and keeps watching it. Disabled watches publish a
// single idle result.
func Watch[T any](c *Client, key querykey.Key, producer Producer[T], opts ...Option) *Observer[T] {
	o := &Observer[T]{
		client:   c,
		key:      key,
		producer: producer,
		opts:     c.options(opts),
		updates:  make(chan Result[T], 1),
	}

	if !o.opts.enabled {
		o.publish(Result[T]{Key: key, Status: cache.StatusIdle})
		return o
	}

	o.release = c.store.Observe(key)
	o.unsubscribe = c.store.Subscribe(key, func(entry cache.Entry) {
		o.publish(newResult(c, entry, key, producer, o.opts))
	})
	o.publish(resolve(c, key, producer, o.opts, false))
	return o
}

// Updates delivers the latest state. Older undelivered states are dropped.
// The channel is closed by Close.
func (o *Observer[T]) Updates() <-chan Result[T] {
	return o.updates
}

// Current returns the most recent state.
func (o *Observer[T]) Current() Result[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.latest
}

// Refetch forces a fetch for the watched key.
func (o *Observer[T]) Refetch() {
	o.mu.Lock()
	closed := o.closed
	o.mu.Unlock()
	if closed || !o.opts.enabled {
		return
	}
	o.publish(resolve(o.client, o.key, o.producer, o.opts, true))
}

// Close detaches the observer. Running fetches finish and update the
// store, but nothing is published afterwards.
func (o *Observer[T]) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.updates)
	o.mu.Unlock()

	if o.unsubscribe != nil {
		o.unsubscribe()
	}
	if o.release != nil {
		o.release()
	}
}

func (o *Observer[T]) publish(res Result[T]) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || res.Version < o.version {
		return
	}
	o.version = res.Version
	o.latest = res

	select {
	case <-o.updates:
	default:
	}
	o.updates <- res
}
