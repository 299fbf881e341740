package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"glove_go/internal/glove"
	"glove_go/internal/models"
	"glove_go/internal/redis"
	"glove_go/pkg/logger"
)

// Handler contém os handlers HTTP para a API
type Handler struct {
	gloveService *glove.Service
	redisService *redis.Service
}

// NewHandler cria um novo handler de API
func NewHandler(gloveService *glove.Service, redisService *redis.Service) *Handler {
	return &Handler{
		gloveService: gloveService,
		redisService: redisService,
	}
}

// GetStatus retorna o status atual do rastreador
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	status := h.gloveService.GetStatus()

	// Formatar resposta
	response := map[string]interface{}{
		"status":       status.Status,
		"timestamp":    status.Timestamp.UnixNano() / int64(time.Millisecond),
		"packetsLeft":  status.PacketsLeft,
		"packetsRight": status.PacketsRight,
		"decodeErrors": status.DecodeErrors,
		"recording":    status.Recording,
		"playing":      status.Playing,
	}

	if status.DeviceLeft != "" {
		response["deviceLeft"] = status.DeviceLeft
	}
	if status.DeviceRight != "" {
		response["deviceRight"] = status.DeviceRight
	}
	if status.LastError != "" {
		response["lastError"] = status.LastError
	}

	h.respondWithJSON(w, http.StatusOK, response)
}

// GetSnapshot retorna a pose calibrada atual de uma mão
// Rota: /snapshot/{left|right}
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	// Extrair a mão da URL
	parts := strings.Split(r.URL.Path, "/")
	handToken := parts[len(parts)-1]

	hand, err := models.ParseHand(handToken)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Mão inválida. Use 'left' ou 'right'.")
		return
	}

	snapshot := h.gloveService.Snapshot(hand)

	response := map[string]interface{}{
		"hand":      hand.String(),
		"timestamp": time.Now().UnixNano() / int64(time.Millisecond),
		"joints":    snapshot,
	}

	h.respondWithJSON(w, http.StatusOK, response)
}

// GetCounts retorna os contadores de pacotes por mão
func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	left, right, decodeErrors := h.gloveService.PacketCounts()

	response := map[string]interface{}{
		"packetsLeft":  left,
		"packetsRight": right,
		"decodeErrors": decodeErrors,
		"timestamp":    time.Now().UnixNano() / int64(time.Millisecond),
	}

	h.respondWithJSON(w, http.StatusOK, response)
}

// GetPalmHistory retorna a trajetória recente da palma de uma mão
// Rota: /palm-history/{left|right}
func (h *Handler) GetPalmHistory(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	parts := strings.Split(r.URL.Path, "/")
	hand, err := models.ParseHand(parts[len(parts)-1])
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Mão inválida. Use 'left' ou 'right'.")
		return
	}

	var history []models.PalmPoint

	// Se o Redis estiver disponível, obter histórico de lá
	if h.redisService != nil && h.redisService.IsConnected() {
		redisHistory, err := h.redisService.GetPalmHistory(hand)
		if err == nil {
			history = redisHistory
		}
	}

	// Se não houver histórico, responder com array vazio
	if history == nil {
		history = []models.PalmPoint{}
	}

	h.respondWithJSON(w, http.StatusOK, history)
}

// Calibrate captura a pose atual como a nova baseline de calibração
func (h *Handler) Calibrate(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodPost {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	baseline := h.gloveService.Recalibrate()

	response := map[string]interface{}{
		"calibrated": true,
		"timestamp":  baseline.Timestamp.UnixNano() / int64(time.Millisecond),
	}

	h.respondWithJSON(w, http.StatusOK, response)
}

// StartRecording inicia uma nova gravação de movimento. Com gravação já em
// curso, o comando é um no-op e a resposta continua 200.
func (h *Handler) StartRecording(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodPost {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	h.gloveService.StartRecording()

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recording": true,
		"timestamp": time.Now().UnixNano() / int64(time.Millisecond),
	})
}

// StopRecording encerra a gravação e retorna o número de frames capturados.
// Sem gravação em curso, é um no-op que responde frameCount 0.
func (h *Handler) StopRecording(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodPost {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	count := h.gloveService.StopRecording()

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recording":  false,
		"frameCount": count,
		"timestamp":  time.Now().UnixNano() / int64(time.Millisecond),
	})
}

// GetRecordingInfo retorna os metadados da última gravação concluída
func (h *Handler) GetRecordingInfo(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	h.respondWithJSON(w, http.StatusOK, h.gloveService.LastRecordingInfo())
}

// StartPlayback inicia a reprodução em loop da última gravação
func (h *Handler) StartPlayback(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodPost {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	if err := h.gloveService.StartPlayback(); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, glove.ErrEmptyRecording) {
			code = http.StatusUnprocessableEntity
		}
		h.respondWithError(w, code, err.Error())
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"playing":   true,
		"timestamp": time.Now().UnixNano() / int64(time.Millisecond),
	})
}

// StopPlayback encerra a reprodução em curso; parado, é um no-op com 200
func (h *Handler) StopPlayback(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodPost {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	h.gloveService.StopPlayback()

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"playing":   false,
		"timestamp": time.Now().UnixNano() / int64(time.Millisecond),
	})
}

// GetPlaybackFrame retorna o frame atual da reprodução
func (h *Handler) GetPlaybackFrame(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodGet {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	frame := h.gloveService.CurrentPlaybackFrame()
	if frame == nil {
		h.respondWithError(w, http.StatusNotFound, "Nenhuma reprodução em andamento")
		return
	}

	h.respondWithJSON(w, http.StatusOK, frame)
}

// ExportSnapshot escreve a pose calibrada atual em CSV
func (h *Handler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	// Verificar método HTTP
	if r.Method != http.MethodPost {
		h.respondWithError(w, http.StatusMethodNotAllowed, "Método não permitido")
		return
	}

	path, err := h.gloveService.ExportSnapshot()
	if err != nil {
		if errors.Is(err, glove.ErrNoData) {
			h.respondWithError(w, http.StatusConflict, err.Error())
			return
		}
		h.respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"exported":  true,
		"path":      path,
		"timestamp": time.Now().UnixNano() / int64(time.Millisecond),
	})
}

// respondWithError responde com erro em formato JSON
func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON responde com JSON
func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Errorf("Erro ao codificar resposta JSON: %v", err)
		// Se falhar ao codificar JSON, tentar responder com erro simples
		fmt.Fprintf(w, `{"error":"Erro interno ao processar resposta"}`)
	}
}
