package websocket

import (
	"encoding/json"
	"time"

	"glove_go/internal/models"
)

// Funções utilitárias para criação e processamento de mensagens WebSocket

// NewPoseMessage cria uma nova mensagem de pose calibrada
func NewPoseMessage(left, right models.HandSnapshot, packetsLeft, packetsRight int64, deviceLeft, deviceRight string) models.PoseMessage {
	return models.PoseMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "pose",
			Timestamp: time.Now(),
		},
		Left:         left,
		Right:        right,
		PacketsLeft:  packetsLeft,
		PacketsRight: packetsRight,
		DeviceLeft:   deviceLeft,
		DeviceRight:  deviceRight,
	}
}

// NewStatusMessage cria uma nova mensagem de status
func NewStatusMessage(status models.TrackerStatus) models.StatusMessage {
	return models.StatusMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "status",
			Timestamp: time.Now(),
		},
		Status:       status.Status,
		PacketsLeft:  status.PacketsLeft,
		PacketsRight: status.PacketsRight,
		DecodeErrors: status.DecodeErrors,
		Recording:    status.Recording,
		Playing:      status.Playing,
		LastError:    status.LastError,
	}
}

// NewPlaybackMessage cria uma nova mensagem com o frame atual da reprodução
func NewPlaybackMessage(frame models.Frame, frameCount int) models.PlaybackMessage {
	return models.PlaybackMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "playback",
			Timestamp: time.Now(),
		},
		FrameIndex: frame.Index,
		FrameCount: frameCount,
		Frame:      frame,
	}
}

// NewRecordingEventMessage cria uma mensagem de transição do gravador
func NewRecordingEventMessage(event string, frameCount int) models.RecordingEventMessage {
	return models.RecordingEventMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "recording",
			Timestamp: time.Now(),
		},
		Event:      event,
		FrameCount: frameCount,
	}
}

// NewErrorMessage cria uma nova mensagem de erro
func NewErrorMessage(message string, errorCode string) models.WebSocketMessage {
	return models.WebSocketMessage{
		Type:      "error",
		Timestamp: time.Now(),
		Error:     message,
		Data: map[string]string{
			"code": errorCode,
		},
	}
}

// SerializeMessage serializa uma mensagem para JSON
func SerializeMessage(message interface{}) ([]byte, error) {
	return json.Marshal(message)
}

// ParseClientCommand analisa um comando recebido do cliente
func ParseClientCommand(data []byte) (models.CommandMessage, error) {
	var command models.CommandMessage
	err := json.Unmarshal(data, &command)
	return command, err
}

// CreatePongResponse cria uma resposta para um ping do cliente
func CreatePongResponse(pingTime int64) *models.PongMessage {
	return &models.PongMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "pong",
			Timestamp: time.Now(),
		},
		Time:       pingTime,
		ServerTime: time.Now().UnixNano() / int64(time.Millisecond),
	}
}
