package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChaos_FailureRate(t *testing.T) {
	tests := []struct {
		name       string
		rate       float64
		path       string
		wantStatus int
	}{
		{name: "never fails", rate: 0, path: "/hotels", wantStatus: http.StatusOK},
		{name: "always fails", rate: 1, path: "/hotels", wantStatus: http.StatusServiceUnavailable},
		{name: "health is exempt", rate: 1, path: "/healthz", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChaos(0, tt.rate, 1, slog.New(slog.DiscardHandler))

			rec := httptest.NewRecorder()
			c.Wrap(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestChaos_Latency(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := newChaos(100*time.Millisecond, 0, 1, slog.New(slog.DiscardHandler))

		start := time.Now()
		rec := httptest.NewRecorder()
		c.Wrap(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))
		elapsed := time.Since(start)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
		assert.Less(t, elapsed, 150*time.Millisecond)
	})
}
