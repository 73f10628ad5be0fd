package internal

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/config"
	"github.com/Avina-dox/DasavenaTI/internal/session"
)

func scrape(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsUseRoutePatterns(t *testing.T) {
	m := NewMetrics()
	router := chi.NewRouter()
	router.Use(m.Middleware())
	router.Get("/activos/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	router.Get("/metrics", m.Handler().ServeHTTP)

	for i := 1; i <= 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", fmt.Sprintf("/activos/%d", i), nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	body := scrape(t, router)
	assert.Contains(t, body, "dashboard_http_requests_total")
	assert.Contains(t, body, "dashboard_http_request_duration_seconds")
	assert.Contains(t, body, "dashboard_http_requests_in_flight")

	// Three different ids collapse into one series under the route pattern.
	assert.Contains(t, body,
		`dashboard_http_requests_total{method="GET",path="/activos/{id}",status="200"} 3`)
	assert.NotContains(t, body, `path="/activos/1"`)
}

func TestMetricsRecordStatusCodes(t *testing.T) {
	m := NewMetrics()
	router := chi.NewRouter()
	router.Use(m.Middleware())
	router.Get("/roto", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	router.Get("/metrics", m.Handler().ServeHTTP)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/roto", nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	body := scrape(t, router)
	assert.Contains(t, body,
		`dashboard_http_requests_total{method="GET",path="/roto",status="502"} 1`)
}

func TestMetricsEndpointDisabledByDefault(t *testing.T) {
	srv := newTestServer(t, fakeAPI(t))
	rec := get(srv, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpointWhenEnabled(t *testing.T) {
	api := httptest.NewServer(fakeAPI(t))
	t.Cleanup(api.Close)

	cfg := &config.Config{
		APIBase:       api.URL,
		ListenAddr:    ":0",
		SessionSecret: testSecret,
		SessionDB:     filepath.Join(t.TempDir(), "sessions.db"),
		SessionTTL:    time.Hour,
		EnableMetrics: true,
	}
	sessions, err := session.Open(cfg.SessionDB, cfg.SessionTTL)
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(cfg, apiclient.New(cfg.APIBase), sessions, logger)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, get(srv, "/health", nil).Code)

	rec := get(srv, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `path="/health"`)
}
