package ratelimit_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alex-user-go/tourguide/internal/ratelimit"
)

func TestLimiter_Allow(t *testing.T) {
	tests := []struct {
		name       string
		rate       int
		key        string
		calls      int
		wantPassed int
	}{
		{name: "all submissions within limit", rate: 5, key: "10.0.0.1", calls: 5, wantPassed: 5},
		{name: "exceed limit", rate: 3, key: "10.0.0.2", calls: 5, wantPassed: 3},
		{name: "single submission", rate: 10, key: "10.0.0.3", calls: 1, wantPassed: 1},
		{name: "zero rate blocks all", rate: 0, key: "10.0.0.4", calls: 3, wantPassed: 0},
		{name: "empty key", rate: 2, key: "", calls: 3, wantPassed: 2},
		{name: "negative rate blocks all", rate: -5, key: "10.0.0.5", calls: 3, wantPassed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ratelimit.New(tt.rate, time.Minute)
			defer l.Close()

			passed := 0
			for range tt.calls {
				if l.Allow(tt.key) {
					passed++
				}
			}
			assert.Equal(t, tt.wantPassed, passed)
		})
	}
}

func TestLimiter_WindowReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := ratelimit.New(2, time.Minute)
		defer l.Close()

		key := "10.0.0.1"
		assert.True(t, l.Allow(key))
		assert.True(t, l.Allow(key))
		assert.False(t, l.Allow(key))
		assert.Equal(t, time.Minute, l.RetryAfter(key))

		time.Sleep(40 * time.Second)
		assert.Equal(t, 20*time.Second, l.RetryAfter(key))
		assert.False(t, l.Allow(key))

		time.Sleep(20 * time.Second)
		assert.Zero(t, l.RetryAfter(key))
		assert.True(t, l.Allow(key))
		assert.True(t, l.Allow(key))
	})
}

func TestLimiter_MultipleKeys(t *testing.T) {
	l := ratelimit.New(2, time.Minute)
	defer l.Close()

	for _, key := range []string{"a", "b", "c"} {
		passed := 0
		for range 3 {
			if l.Allow(key) {
				passed++
			}
		}
		assert.Equal(t, 2, passed, key)
	}
	assert.Equal(t, 3, l.Len())
}

func TestLimiter_Cleanup(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := ratelimit.New(1, time.Minute)
		defer l.Close()

		l.Allow("idle")
		assert.Equal(t, 1, l.Len())

		time.Sleep(3*time.Minute + time.Second)
		synctest.Wait()
		assert.Equal(t, 0, l.Len())
	})
}

func TestLimiter_Concurrent(t *testing.T) {
	l := ratelimit.New(100, time.Minute)
	defer l.Close()

	var (
		wg     sync.WaitGroup
		passed atomic.Int32
	)
	start := make(chan struct{})
	for range 200 {
		wg.Go(func() {
			<-start
			if l.Allow("10.0.0.1") {
				passed.Add(1)
			}
		})
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(100), passed.Load())
}

func TestLimiter_CloseTwice(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	l.Close()
	assert.NotPanics(t, l.Close)
}
