package app_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tourguide/internal/app"
	"github.com/alex-user-go/tourguide/internal/catalog"
	"github.com/alex-user-go/tourguide/internal/config"
	"github.com/alex-user-go/tourguide/internal/handler"
	"github.com/alex-user-go/tourguide/internal/remote"
)

func testConfig(t *testing.T, catalogURL string) config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(map[string]string{
		"ADDR":        "127.0.0.1:0",
		"CATALOG_URL": catalogURL,
	})
	require.NoError(t, err)
	return cfg
}

func TestApp_EndToEnd(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	upstream := httptest.NewServer(remote.NewCatalogServer(remote.NewCatalog(), logger).Routes())
	t.Cleanup(upstream.Close)

	a := app.New(testConfig(t, upstream.URL), logger)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/hotels?city=tangier")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handler.QueryResponse[catalog.Page[catalog.Hotel]]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Data)
	require.NotEmpty(t, body.Data.Items)
	for _, h := range body.Data.Items {
		assert.Equal(t, "tangier", h.City)
	}

	resp, err = http.Get(srv.URL + "/api/hotels/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestApp_CatalogDown(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	upstream := httptest.NewServer(http.NotFoundHandler())
	upstream.Close()

	a := app.New(testConfig(t, upstream.URL), logger)
	t.Cleanup(a.Close)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), remote.UnavailableMessage)
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	a := app.New(testConfig(t, "http://127.0.0.1:1"), slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Serve(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
