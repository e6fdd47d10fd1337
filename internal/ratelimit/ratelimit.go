// Package ratelimit limits submissions per client with a fixed window.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter allows rate submissions per key in every window.
type Limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      int           // submissions per window
	window    time.Duration // window length
	done      chan struct{}
	closeOnce sync.Once
}

type bucket struct {
	tokens    int
	lastReset time.Time
}

// New creates a new Limiter and starts its background cleanup.
func New(rate int, window time.Duration) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		done:    make(chan struct{}),
	}

	go l.cleanup(max(window, time.Second))

	return l
}

// Close stops the background cleanup goroutine. It is safe to call more
// than once.
func (l *Limiter) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// Allow consumes one submission for key and reports whether it fits in
// the current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucket(key, time.Now())
	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// RetryAfter returns how long key has to wait for its window to reset.
// It is zero when a submission would be allowed now.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b := l.bucket(key, now)
	if b.tokens > 0 {
		return 0
	}
	return b.lastReset.Add(l.window).Sub(now)
}

// bucket returns the bucket of key, refilled when its window has passed.
// Callers hold l.mu.
func (l *Limiter) bucket(key string, now time.Time) *bucket {
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.rate, lastReset: now}
		l.buckets[key] = b
	}
	if now.Sub(b.lastReset) >= l.window {
		b.tokens = l.rate
		b.lastReset = now
	}
	return b
}

// cleanup periodically removes buckets idle for two windows.
func (l *Limiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			now := time.Now()
			for key, b := range l.buckets {
				if now.Sub(b.lastReset) > 2*l.window {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
