package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tourguide/internal/cache"
	"github.com/alex-user-go/tourguide/internal/query"
	"github.com/alex-user-go/tourguide/internal/querykey"
)

// next waits for an update matching ok.
func next[T any](t *testing.T, o *query.Observer[T], ok func(query.Result[T]) bool) query.Result[T] {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case res, open := <-o.Updates():
			require.True(t, open, "updates closed")
			if ok(res) {
				return res
			}
		case <-timeout:
			t.Fatal("timed out waiting for observer update")
		}
	}
}

func settled[T any](res query.Result[T]) bool {
	return !res.Loading() && res.Status != cache.StatusIdle
}

func TestWatch_PublishesLifecycle(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("rabat")
	release := make(chan struct{})

	o := query.Watch(c, key, func(context.Context) (string, error) {
		<-release
		return "riads", nil
	})
	defer o.Close()

	assert.True(t, o.Current().Loading())

	close(release)
	res := next(t, o, settled[string])
	assert.Equal(t, "riads", res.Data)
	assert.Equal(t, cache.StatusSuccess, o.Current().Status)
}

func TestWatch_SeesInvalidationAndRefetch(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("fes")
	version := 0

	o := query.Watch(c, key, func(context.Context) (int, error) {
		version++
		return version, nil
	})
	defer o.Close()

	first := next(t, o, settled[int])
	assert.Equal(t, 1, first.Data)

	c.Store().Invalidate(querykey.InDomain("hotels"))
	invalidated := next(t, o, func(r query.Result[int]) bool { return r.Stale })
	assert.Equal(t, 1, invalidated.Data, "invalidated data stays visible")

	o.Refetch()
	second := next(t, o, func(r query.Result[int]) bool { return settled(r) && r.Data == 2 })
	assert.False(t, second.Stale)
}

func TestWatch_ObservedEntrySurvivesGC(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("meknes")

	o := query.Watch(c, key, func(context.Context) (int, error) {
		return 1, nil
	}, query.WithRetention(0))
	next(t, o, settled[int])

	// Retention of zero makes the entry collectable as soon as it is unobserved.
	time.Sleep(time.Millisecond)
	assert.Equal(t, 0, c.Store().GC())

	o.Close()
	assert.Equal(t, 1, c.Store().GC())
}

func TestWatch_CloseStopsDelivery(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("ifrane")
	release := make(chan struct{})

	o := query.Watch(c, key, func(context.Context) (string, error) {
		<-release
		return "late", nil
	})
	o.Close()
	o.Close()

	close(release)
	res, err := query.Resolve(c, key, func(context.Context) (string, error) {
		return "unused", nil
	}).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", res.Data, "the fetch still lands in the store")

	for range o.Updates() {
	}
	assert.True(t, o.Current().Loading(), "nothing is published after Close")
}

func TestWatch_Disabled(t *testing.T) {
	c, _ := newClient(t)
	called := false

	o := query.Watch(c, hotelsKey(""), func(context.Context) (int, error) {
		called = true
		return 0, nil
	}, query.WithEnabled(false))
	defer o.Close()

	res := <-o.Updates()
	assert.Equal(t, cache.StatusIdle, res.Status)
	o.Refetch()
	assert.False(t, called)
	assert.Equal(t, 0, c.Store().Len())
}
