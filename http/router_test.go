package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	srv := newTestServer(t, 10, nil)

	w := srv.do(http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReady(t *testing.T) {
	srv := newTestServer(t, 10, nil)

	w := srv.do(http.MethodGet, "/ready", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"cache":"ok"}}`, w.Body.String())
}

func TestReady_DependencyDown(t *testing.T) {
	srv := newTestServer(t, 10, map[string]Pinger{"cache": fakePinger{err: errCacheDown}})

	w := srv.do(http.MethodGet, "/ready", "", "")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not_ready","checks":{"cache":"unavailable"}}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, 10, nil)
	srv.do(http.MethodPost, "/api/calculate-emi", "", `{"principal": 5000, "rate": 9, "tenure": 6}`)

	w := srv.do(http.MethodGet, "/metrics", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "emi_calculations_total")
	assert.Contains(t, w.Body.String(), "http_request_duration_seconds")
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, 10, nil)

	w := srv.do(http.MethodGet, "/api/unknown", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
