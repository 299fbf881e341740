package models

import "time"

// WebSocketMessage representa a estrutura base de todas as mensagens WebSocket
type WebSocketMessage struct {
	Type      string      `json:"type"`            // Tipo da mensagem: "pose", "status", "playback", etc.
	Timestamp time.Time   `json:"timestamp"`       // Timestamp da mensagem
	Data      interface{} `json:"data,omitempty"`  // Dados adicionais específicos do tipo
	Error     string      `json:"error,omitempty"` // Mensagem de erro, se houver
}

// PoseMessage é uma mensagem com a pose calibrada atual de ambas as mãos
type PoseMessage struct {
	WebSocketMessage
	Left         HandSnapshot `json:"left"`
	Right        HandSnapshot `json:"right"`
	PacketsLeft  int64        `json:"packetsLeft"`
	PacketsRight int64        `json:"packetsRight"`
	DeviceLeft   string       `json:"deviceLeft,omitempty"`
	DeviceRight  string       `json:"deviceRight,omitempty"`
}

// StatusMessage é uma mensagem específica para atualizações de status
type StatusMessage struct {
	WebSocketMessage
	Status       string `json:"status"`
	PacketsLeft  int64  `json:"packetsLeft"`
	PacketsRight int64  `json:"packetsRight"`
	DecodeErrors int64  `json:"decodeErrors"`
	Recording    bool   `json:"recording"`
	Playing      bool   `json:"playing"`
	LastError    string `json:"lastError,omitempty"`
}

// PlaybackMessage é uma mensagem com o frame atual da reprodução
type PlaybackMessage struct {
	WebSocketMessage
	FrameIndex int   `json:"frameIndex"`
	FrameCount int   `json:"frameCount"`
	Frame      Frame `json:"frame"`
}

// RecordingEventMessage anuncia transições do gravador (started/stopped)
type RecordingEventMessage struct {
	WebSocketMessage
	Event      string `json:"event"`
	FrameCount int    `json:"frameCount,omitempty"`
}

// CommandMessage é uma mensagem de comando do cliente para o servidor
type CommandMessage struct {
	Type   string      `json:"type"`             // Tipo de comando: "get_status", "ping", etc.
	Params interface{} `json:"params,omitempty"` // Parâmetros adicionais
	ID     string      `json:"id,omitempty"`     // ID opcional para correlacionar solicitações/respostas
}

// ClientCommand representa um comando enviado pelo cliente
type ClientCommand struct {
	Command  string      `json:"command"`
	Params   interface{} `json:"params,omitempty"`
	ClientID string      `json:"-"` // Usado internamente, não enviado no JSON
}

// PingMessage representa um ping enviado pelo cliente
type PingMessage struct {
	WebSocketMessage
	Time int64 `json:"time"` // Timestamp em milissegundos
}

// PongMessage representa um pong enviado pelo servidor
type PongMessage struct {
	WebSocketMessage
	Time       int64 `json:"time"`       // Timestamp original do ping
	ServerTime int64 `json:"serverTime"` // Timestamp do servidor em milissegundos
}
