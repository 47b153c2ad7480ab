package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyrox-calc/api/internal/handle"
	"hyrox-calc/api/internal/metrics"
	"hyrox-calc/api/internal/ocr"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := handle.New(&ocr.Engines{}, time.Second, zerolog.Nop())
	srv := httptest.NewServer(NewRouter(h, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestRouter_Summary(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/summary", "application/json",
		strings.NewReader(`{"running":["04:30"],"roxzone":"01:00"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"overallTotal":330`)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/summary")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `hyrox_http_requests_total{route="/healthz",status="200"}`)
}

func TestRequestLogging_UnmatchedPathsShareOneSeries(t *testing.T) {
	srv := newTestServer(t)
	before := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(unmatchedRoute, "404"))

	for _, p := range []string{"/a1", "/b2", "/c3"} {
		resp, err := http.Get(srv.URL + p)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(unmatchedRoute, "404")))
	assert.False(t, metrics.RequestsTotal.DeleteLabelValues("/b2", "404"), "raw path must not become a label")
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "127.0.0.1:0", http.NotFoundHandler(), zerolog.Nop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
