// Package searchstate owns the filter and pagination parameters of a
// search view.
package searchstate

import (
	"sync"
)

// Partial is a typed partial update of params P. Apply merges the update
// and resets pagination as described on each implementation.
type Partial[P any] interface {
	Apply(P) P
}

// Controller holds the current parameters of one search. It is safe for
// concurrent use.
type Controller[P any, U Partial[P]] struct {
	mu       sync.Mutex
	params   P
	defaults P
	subs     map[int]func(P)
	nextSub  int
}

// New creates a Controller starting at defaults.
func New[P any, U Partial[P]](defaults P) *Controller[P, U] {
	return &Controller[P, U]{
		params:   defaults,
		defaults: defaults,
		subs:     make(map[int]func(P)),
	}
}

// Params returns the current parameters.
func (c *Controller[P, U]) Params() P {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// Update merges u into the current parameters and returns the result.
func (c *Controller[P, U]) Update(u U) P {
	c.mu.Lock()
	c.params = u.Apply(c.params)
	params := c.params
	subs := c.subscribers()
	c.mu.Unlock()

	notify(subs, params)
	return params
}

// Reset restores the defaults and returns them.
func (c *Controller[P, U]) Reset() P {
	c.mu.Lock()
	c.params = c.defaults
	params := c.params
	subs := c.subscribers()
	c.mu.Unlock()

	notify(subs, params)
	return params
}

// Subscribe calls fn with the new parameters after every Update and
// Reset. The returned func cancels the subscription.
func (c *Controller[P, U]) Subscribe(fn func(P)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller[P, U]) subscribers() []func(P) {
	subs := make([]func(P), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify[P any](subs []func(P), params P) {
	for _, fn := range subs {
		fn(params)
	}
}

// assign copies *v into dst when v is set and reports whether it did.
func assign[T any](dst *T, v *T) bool {
	if v == nil {
		return false
	}
	*dst = *v
	return true
}

// paginate applies the offset rule: an explicit offset always wins,
// otherwise any other supplied field returns the search to page one.
func paginate(offset *int, filtered bool, current int) int {
	switch {
	case offset != nil:
		return *offset
	case filtered:
		return 0
	default:
		return current
	}
}
