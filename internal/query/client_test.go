package query_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tourguide/internal/cache"
	"github.com/alex-user-go/tourguide/internal/obs"
	"github.com/alex-user-go/tourguide/internal/query"
	"github.com/alex-user-go/tourguide/internal/querykey"
)

var defaults = cache.Policy{StaleAfter: time.Minute, Retention: 5 * time.Minute}

func newClient(t *testing.T) (*query.Client, *obs.Metrics) {
	t.Helper()
	metrics := obs.NewMetrics(prometheus.NewRegistry())
	store := cache.New(0, metrics)
	c := query.NewClient(store, defaults, metrics, slog.New(slog.DiscardHandler))
	t.Cleanup(func() {
		c.Close()
		store.Close()
	})
	return c, metrics
}

func hotelsKey(city string) querykey.Key {
	return querykey.MustBuild("hotels", map[string]any{"city": city})
}

func constant[T any](v T, calls *atomic.Int32) query.Producer[T] {
	return func(context.Context) (T, error) {
		calls.Add(1)
		return v, nil
	}
}

func TestResolve_Disabled(t *testing.T) {
	c, _ := newClient(t)
	var calls atomic.Int32

	res := query.Resolve(c, hotelsKey(""), constant("x", &calls), query.WithEnabled(false))

	assert.Equal(t, cache.StatusIdle, res.Status)
	assert.False(t, res.HasData)
	assert.Equal(t, 0, c.Store().Len(), "disabled reads never touch the store")

	res, err := res.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cache.StatusIdle, res.Refetch().Status)
	assert.Zero(t, calls.Load())

	_, err = query.Fetch(context.Background(), c, hotelsKey(""), constant("x", &calls), query.WithEnabled(false))
	require.ErrorContains(t, err, query.ErrDisabled.Error())
	assert.Zero(t, calls.Load())
}

func TestResolve_MissThenFreshHit(t *testing.T) {
	c, metrics := newClient(t)
	key := hotelsKey("rabat")
	var calls atomic.Int32

	first := query.Resolve(c, key, constant([]string{"riad"}, &calls))
	assert.True(t, first.Loading())
	assert.False(t, first.HasData)

	settled, err := first.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cache.StatusSuccess, settled.Status)
	assert.Equal(t, []string{"riad"}, settled.Data)
	assert.False(t, settled.Stale)

	hit := query.Resolve(c, key, constant([]string{"other"}, &calls))
	assert.Equal(t, cache.StatusSuccess, hit.Status)
	assert.Equal(t, []string{"riad"}, hit.Data)
	assert.Equal(t, int32(1), calls.Load(), "fresh entries are served without a fetch")

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CacheHitsTotal.WithLabelValues("hotels")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CacheMissesTotal.WithLabelValues("hotels")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.FetchesTotal.WithLabelValues("hotels", "success")), 0)
}

func TestResolve_SingleFlight(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("marrakech")

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	producer := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return 42, nil
	}

	const readers = 10
	results := make([]query.Result[int], readers)
	results[0] = query.Resolve(c, key, producer)
	<-started

	var wg sync.WaitGroup
	for i := 1; i < readers; i++ {
		wg.Go(func() {
			results[i] = query.Resolve(c, key, producer)
		})
	}
	wg.Wait()
	close(release)

	for _, res := range results {
		assert.True(t, res.Loading())
		settled, err := res.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, settled.Data)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestResolve_StaleWhileRevalidate(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("fes")

	v1, err := query.Fetch(context.Background(), c, key, func(context.Context) (string, error) {
		return "v1", nil
	}, query.WithStaleAfter(0))
	require.NoError(t, err)
	require.Equal(t, "v1", v1)

	release := make(chan struct{})
	res := query.Resolve(c, key, func(context.Context) (string, error) {
		<-release
		return "v2", nil
	}, query.WithStaleAfter(0))

	assert.True(t, res.Loading())
	assert.True(t, res.HasData)
	assert.True(t, res.Stale)
	assert.Equal(t, "v1", res.Data, "old data is exposed while the refetch runs")

	close(release)
	res, err = res.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2", res.Data)
}

func TestResolve_ErrorKeepsPriorData(t *testing.T) {
	c, metrics := newClient(t)
	key := hotelsKey("tangier")

	_, err := query.Fetch(context.Background(), c, key, func(context.Context) (string, error) {
		return "good", nil
	})
	require.NoError(t, err)

	boom := errors.New("upstream down")
	res, err := query.Resolve(c, key, func(context.Context) (string, error) {
		return "", boom
	}).Refetch().Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cache.StatusError, res.Status)
	assert.Equal(t, boom, res.Err)
	assert.True(t, res.HasData)
	assert.Equal(t, "good", res.Data)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.FetchesTotal.WithLabelValues("hotels", "error")), 0)

	data, err := query.Fetch(context.Background(), c, key, func(context.Context) (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "good", data)
}

func TestResolve_RefetchCoalesces(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("agadir")

	var calls atomic.Int32
	release := make(chan struct{})
	producer := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 7, nil
	}

	first := query.Resolve(c, key, producer)
	second := first.Refetch()
	third := second.Refetch()
	close(release)

	for _, res := range []query.Result[int]{first, second, third} {
		settled, err := res.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, settled.Data)
	}
	assert.Equal(t, int32(1), calls.Load())

	forced, err := query.Resolve(c, key, producer).Refetch().Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, forced.Data)
	assert.Equal(t, int32(2), calls.Load(), "refetch ignores freshness")
}

func TestResolve_SupersededCompletionDiscarded(t *testing.T) {
	c, metrics := newClient(t)
	key := hotelsKey("rabat")

	var calls atomic.Int32
	oldStarted := make(chan struct{})
	releaseOld := make(chan struct{})
	producer := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(oldStarted)
			<-releaseOld
			return "old", nil
		}
		return "new", nil
	}

	old := query.Resolve(c, key, producer)
	<-oldStarted

	c.Store().Invalidate(querykey.InDomain("hotels"))

	newer, err := query.Resolve(c, key, producer).Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "new", newer.Data)

	close(releaseOld)
	late, err := old.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "new", late.Data, "an older completion never overwrites newer data")
	assert.Equal(t, cache.StatusSuccess, late.Status)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.FetchDiscardsTotal.WithLabelValues("hotels")) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestFetch_InvalidatedWhileColdStillYieldsData(t *testing.T) {
	c, metrics := newClient(t)
	key := hotelsKey("rabat")

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	producer := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return "before booking", nil
		}
		return "after booking", nil
	}

	type outcome struct {
		data string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		data, err := query.Fetch(context.Background(), c, key, producer)
		done <- outcome{data, err}
	}()
	<-started

	c.Store().Invalidate(querykey.InDomain("hotels"))
	close(release)

	select {
	case got := <-done:
		require.NoError(t, got.err)
		assert.Equal(t, "after booking", got.data)
	case <-time.After(2 * time.Second):
		t.Fatal("Fetch did not return")
	}
	assert.Equal(t, int32(2), calls.Load())

	entry, ok := c.Store().Get(key)
	require.True(t, ok)
	assert.Equal(t, cache.StatusSuccess, entry.Status)
	assert.False(t, entry.Invalidated)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.FetchDiscardsTotal.WithLabelValues("hotels")), 0)
}

func TestWatch_InvalidatedWhileLoadingRefetches(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("tetouan")

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	o := query.Watch(c, key, func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return int(calls.Load()), nil
	})
	defer o.Close()
	<-started

	c.Store().Invalidate(querykey.InDomain("hotels"))
	close(release)

	// Nobody waits on the key, yet the newer generation still runs.
	require.Eventually(t, func() bool {
		res := o.Current()
		return res.Status == cache.StatusSuccess && res.Data == 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestFetch_TypeMismatch(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("agadir")
	var calls atomic.Int32

	_, err := query.Fetch(context.Background(), c, key, constant("page", &calls))
	require.NoError(t, err)

	n, err := query.Fetch(context.Background(), c, key, constant(3, &calls))
	require.ErrorIs(t, err, query.ErrTypeMismatch)
	assert.Zero(t, n)
	assert.Equal(t, int32(1), calls.Load(), "fresh data is not refetched for the other type")

	res := query.Resolve(c, key, constant(3, &calls))
	assert.False(t, res.HasData)
	assert.Equal(t, cache.StatusError, res.Status)
}

func TestResult_WaitContextCanceled(t *testing.T) {
	c, _ := newClient(t)
	release := make(chan struct{})
	defer close(release)

	res := query.Resolve(c, hotelsKey("oujda"), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := res.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, got.Loading())
}

func TestClient_CloseCancelsProducers(t *testing.T) {
	metrics := obs.NewMetrics(prometheus.NewRegistry())
	store := cache.New(0, metrics)
	defer store.Close()
	c := query.NewClient(store, defaults, metrics, slog.New(slog.DiscardHandler))

	started := make(chan struct{})
	res := query.Resolve(c, hotelsKey("essaouira"), func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, context.Cause(ctx)
	})
	<-started

	c.Close()

	settled, err := res.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cache.StatusError, settled.Status)
	assert.ErrorIs(t, settled.Err, context.Canceled)
}

func TestResolve_CallerContextDoesNotCancelProducer(t *testing.T) {
	c, _ := newClient(t)
	key := hotelsKey("chefchaouen")
	release := make(chan struct{})

	res := query.Resolve(c, key, func(ctx context.Context) (string, error) {
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "done", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := res.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	settled, err := res.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", settled.Data, "an abandoned reader lets the fetch finish into the store")
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		want     bool
	}{
		{name: "no requirements", required: nil, want: true},
		{name: "all present", required: []string{"rabat", "2025-01-01"}, want: true},
		{name: "one empty", required: []string{"rabat", ""}, want: false},
		{name: "whitespace only", required: []string{"   "}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Enabled(tt.required...))
		})
	}
}
