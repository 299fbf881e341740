package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glove_go/internal/config"
	"glove_go/internal/glove"
)

// newTestRouter cria um router completo sobre um serviço real
func newTestRouter(t *testing.T) *Router {
	t.Helper()

	cfg := &config.Config{
		Tracker: config.TrackerConfig{
			Host:          "127.0.0.1",
			Ports:         []int{0},
			BroadcastRate: 10 * time.Millisecond,
		},
		Recorder: config.RecorderConfig{SampleRate: time.Millisecond},
		Export:   config.ExportConfig{Dir: filepath.Join(t.TempDir(), "exports")},
	}

	service, err := glove.NewService(cfg, nil, nil)
	require.NoError(t, err)
	require.NoError(t, service.Start())
	t.Cleanup(service.Stop)

	router := NewRouter(service, nil, "/api")
	router.Setup()
	return router
}

func TestRouterServesStatus(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	// A cadeia de middlewares aplica os cabeçalhos CORS
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterHandlesPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/calibrate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// OPTIONS é respondido pelo middleware CORS sem chegar ao handler
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/inexistente", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterCommandRoutes(t *testing.T) {
	router := newTestRouter(t)

	// Ciclo completo de gravação através do router montado
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/recording/start", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	time.Sleep(20 * time.Millisecond)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/recording/stop", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/playback/start", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/playback/stop", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
