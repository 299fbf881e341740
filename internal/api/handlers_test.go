package api

import (
	"encoding/json"
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

// newTestHandler cria um handler sobre um serviço real com portas efêmeras
func newTestHandler(t *testing.T) *Handler {
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

	return NewHandler(service, nil)
}

// decodeBody descodifica a resposta JSON num mapa genérico
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetStatus(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	handler.GetStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(0), body["packetsLeft"])
	assert.Equal(t, false, body["recording"])
	assert.Equal(t, false, body["playing"])
}

func TestGetStatusRejectsPost(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/status", nil)
	rec := httptest.NewRecorder()
	handler.GetStatus(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetSnapshot(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot/left", nil)
	rec := httptest.NewRecorder()
	handler.GetSnapshot(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "left", body["hand"])

	joints, ok := body["joints"].([]interface{})
	require.True(t, ok)
	assert.Len(t, joints, 26)
}

func TestGetSnapshotInvalidHand(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot/middle", nil)
	rec := httptest.NewRecorder()
	handler.GetSnapshot(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalibrate(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/calibrate", nil)
	rec := httptest.NewRecorder()
	handler.Calibrate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["calibrated"])
}

func TestRecordingRoundTrip(t *testing.T) {
	handler := newTestHandler(t)

	// Iniciar gravação
	rec := httptest.NewRecorder()
	handler.StartRecording(rec, httptest.NewRequest(http.MethodPost, "/api/recording/start", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Segundo start é um no-op: 200, a gravação em curso continua
	rec = httptest.NewRecorder()
	handler.StartRecording(rec, httptest.NewRequest(http.MethodPost, "/api/recording/start", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["recording"])

	time.Sleep(20 * time.Millisecond)

	// Parar e receber a contagem de frames
	rec = httptest.NewRecorder()
	handler.StopRecording(rec, httptest.NewRequest(http.MethodPost, "/api/recording/stop", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Greater(t, body["frameCount"].(float64), float64(0))
}

func TestStopRecordingWithoutStartIsNoOp(t *testing.T) {
	handler := newTestHandler(t)

	// Stop em Idle responde 200 com zero frames, nunca erro
	rec := httptest.NewRecorder()
	handler.StopRecording(rec, httptest.NewRequest(http.MethodPost, "/api/recording/stop", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["frameCount"])
	assert.Equal(t, false, body["recording"])
}

func TestStopPlaybackWhenStoppedIsNoOp(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.StopPlayback(rec, httptest.NewRequest(http.MethodPost, "/api/playback/stop", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["playing"])
}

func TestPlaybackEmptyRecording(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.StartPlayback(rec, httptest.NewRequest(http.MethodPost, "/api/playback/start", nil))

	// Sem gravação concluída: 422, não 500
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlaybackCurrentWhenStopped(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.GetPlaybackFrame(rec, httptest.NewRequest(http.MethodGet, "/api/playback/current", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportWithoutData(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ExportSnapshot(rec, httptest.NewRequest(http.MethodPost, "/api/export", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["error"])
}

func TestGetCounts(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/counts", nil)
	rec := httptest.NewRecorder()
	handler.GetCounts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["packetsLeft"])
	assert.Equal(t, float64(0), body["packetsRight"])
	assert.Equal(t, float64(0), body["decodeErrors"])
}
