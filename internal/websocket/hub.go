package websocket

import (
	"context"
	"sync"
	"time"

	"glove_go/internal/models"
	"glove_go/pkg/logger"
)

// Hub gerencia todas as conexões WebSocket e distribuição de mensagens
type Hub struct {
	// Clientes registrados
	clients map[*Client]bool

	// Canal para registrar clientes
	register chan *Client

	// Canal para desregistrar clientes
	unregister chan *Client

	// Canal para mensagens de broadcast
	broadcast chan []byte

	// Comando recebido dos clientes
	commands chan models.ClientCommand

	// Mutex para operações concorrentes no mapa de clientes
	mu sync.RWMutex

	// Última pose enviada (para evitar duplicação)
	lastPose     *models.PoseMessage
	lastPoseTime time.Time
	poseLock     sync.RWMutex

	// Estatísticas
	stats struct {
		totalMessages      int64
		totalClients       int64
		messagesPerSecond  float64
		lastStatsReset     time.Time
		messagesSinceReset int64
	}
	statsLock sync.Mutex

	// Sinal para encerramento do hub
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub cria uma nova instância do Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256), // Buffer aumentado para evitar bloqueios
		commands:   make(chan models.ClientCommand, 100),
		ctx:        ctx,
		cancel:     cancel,
	}

	h.stats.lastStatsReset = time.Now()

	return h
}

// Run inicia o loop principal do hub para gerenciar clientes e mensagens
func (h *Hub) Run() {
	logger.Info("Iniciando WebSocket Hub")

	// Ticker para estatísticas periódicas
	statsTicker := time.NewTicker(30 * time.Second)
	defer statsTicker.Stop()

	// Ticker para manter conexões ativas
	cleanupTicker := time.NewTicker(5 * time.Second)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			// Contexto cancelado, encerrar o hub
			logger.Info("Encerrando WebSocket Hub")
			h.closeAllClients()
			return

		case client := <-h.register:
			// Registrar novo cliente
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()

			logger.Infof("Novo cliente WebSocket conectado. ID: %s. Total: %d", client.id, clientCount)

			// Atualizar estatísticas
			h.statsLock.Lock()
			h.stats.totalClients++
			h.statsLock.Unlock()

			// Enviar dados iniciais para o cliente
			go h.sendInitialDataToClient(client)

		case client := <-h.unregister:
			// Desregistrar cliente
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				logger.Infof("Cliente WebSocket desconectado. ID: %s. Total: %d", client.id, len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			// Enviar mensagem para todos os clientes
			h.mu.RLock()
			clientCount := len(h.clients)

			// Atualizar estatísticas
			h.statsLock.Lock()
			h.stats.totalMessages++
			h.stats.messagesSinceReset++
			h.statsLock.Unlock()

			if clientCount == 0 {
				h.mu.RUnlock()
				continue // Nenhum cliente conectado, pular broadcast
			}

			// Broadcast otimizado
			deadClients := make([]*Client, 0, 4)

			for client := range h.clients {
				select {
				case client.send <- message:
					// Mensagem enviada com sucesso
				default:
					// Canal do cliente está cheio, marcar para desconexão
					deadClients = append(deadClients, client)
				}
			}
			h.mu.RUnlock()

			// Lidar com clientes mortos fora do lock para evitar contenção
			for _, client := range deadClients {
				h.unregister <- client
			}

		case cmd := <-h.commands:
			// Processar comando de um cliente
			go h.handleClientCommand(cmd)

		case <-statsTicker.C:
			// Calcular taxa de mensagens por segundo
			h.statsLock.Lock()
			elapsed := time.Since(h.stats.lastStatsReset).Seconds()
			if elapsed > 0 {
				h.stats.messagesPerSecond = float64(h.stats.messagesSinceReset) / elapsed
			}

			// Resetar contador para próximo cálculo
			h.stats.messagesSinceReset = 0
			h.stats.lastStatsReset = time.Now()

			// Obter estatísticas para log
			mps := h.stats.messagesPerSecond
			total := h.stats.totalMessages
			h.statsLock.Unlock()

			// Obter número de clientes
			h.mu.RLock()
			clientCount := len(h.clients)
			h.mu.RUnlock()

			logger.Infof("Estatísticas WebSocket: %d clientes, %.2f msgs/seg, total: %d mensagens",
				clientCount, mps, total)

		case <-cleanupTicker.C:
			// Enviar ping para todos os clientes para manter conexões ativas
			h.sendPingToAllClients()
		}
	}
}

// BroadcastPose envia a pose calibrada atual para todos os clientes.
// Poses quase idênticas enviadas em menos de 15ms são suprimidas, exceto
// quando a palma de alguma mão se moveu de forma significativa.
func (h *Hub) BroadcastPose(pose models.PoseMessage) {
	h.poseLock.Lock()

	shouldSend := true
	if h.lastPose != nil {
		timeSinceLastSend := time.Since(h.lastPoseTime)

		if timeSinceLastSend < 15*time.Millisecond {
			// Verificar se alguma palma se moveu de forma significativa
			significantChange := palmMoved(h.lastPose.Left, pose.Left) ||
				palmMoved(h.lastPose.Right, pose.Right)

			if !significantChange {
				shouldSend = false
			}
		}
	}

	// Atualizar última pose enviada
	h.lastPose = &pose
	h.lastPoseTime = time.Now()
	h.poseLock.Unlock()

	if !shouldSend {
		return
	}

	pose.WebSocketMessage = models.WebSocketMessage{
		Type:      "pose",
		Timestamp: time.Now(),
	}

	// Serializar e enviar a mensagem
	if jsonMessage, err := SerializeMessage(pose); err == nil {
		h.broadcast <- jsonMessage
	} else {
		logger.Error("Erro ao serializar mensagem de pose", err)
	}
}

// BroadcastStatus envia atualização de status para todos os clientes
func (h *Hub) BroadcastStatus(status models.TrackerStatus) {
	message := NewStatusMessage(status)

	// Serializar e enviar a mensagem
	if jsonMessage, err := SerializeMessage(message); err == nil {
		h.broadcast <- jsonMessage
	} else {
		logger.Error("Erro ao serializar mensagem de status", err)
	}
}

// BroadcastPlaybackFrame envia o frame atual da reprodução para todos os clientes
func (h *Hub) BroadcastPlaybackFrame(frame models.Frame, frameCount int) {
	message := NewPlaybackMessage(frame, frameCount)

	// Serializar e enviar a mensagem
	if jsonMessage, err := SerializeMessage(message); err == nil {
		h.broadcast <- jsonMessage
	} else {
		logger.Error("Erro ao serializar mensagem de reprodução", err)
	}
}

// BroadcastRecordingEvent anuncia transições do gravador para todos os clientes
func (h *Hub) BroadcastRecordingEvent(event string, frameCount int) {
	message := NewRecordingEventMessage(event, frameCount)

	// Serializar e enviar a mensagem
	if jsonMessage, err := SerializeMessage(message); err == nil {
		h.broadcast <- jsonMessage
	} else {
		logger.Error("Erro ao serializar mensagem de gravação", err)
	}
}

// handleClientCommand processa comandos recebidos dos clientes
func (h *Hub) handleClientCommand(cmd models.ClientCommand) {
	logger.Infof("Comando recebido do cliente %s: %s", cmd.ClientID, cmd.Command)

	switch cmd.Command {
	case "get_pose":
		h.sendCurrentPose(cmd.ClientID)
	case "ping":
		h.sendPong(cmd.ClientID, cmd.Params)
	default:
		logger.Warnf("Comando desconhecido: %s", cmd.Command)
	}
}

// sendCurrentPose envia a última pose difundida para um cliente específico
func (h *Hub) sendCurrentPose(clientID string) {
	client := h.getClientByID(clientID)
	if client == nil {
		return
	}

	h.poseLock.RLock()
	pose := h.lastPose
	h.poseLock.RUnlock()

	if pose == nil {
		return
	}

	if jsonMsg, err := SerializeMessage(*pose); err == nil {
		client.send <- jsonMsg
	}
}

// sendPong envia resposta de pong para um cliente específico
func (h *Hub) sendPong(clientID string, params interface{}) {
	client := h.getClientByID(clientID)
	if client == nil {
		return
	}

	// Extrair timestamp do ping
	var pingTime int64
	if paramsMap, ok := params.(map[string]interface{}); ok {
		if timeVal, ok := paramsMap["time"].(float64); ok {
			pingTime = int64(timeVal)
		}
	}

	// Serializar e enviar apenas para o cliente solicitante
	if jsonMsg, err := SerializeMessage(CreatePongResponse(pingTime)); err == nil {
		client.send <- jsonMsg
	}
}

// sendInitialDataToClient envia dados iniciais para um novo cliente
func (h *Hub) sendInitialDataToClient(client *Client) {
	// Enviar mensagem de boas-vindas
	welcome := models.WebSocketMessage{
		Type:      "welcome",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message":  "Conectado ao servidor Glove Tracker",
			"clientId": client.id,
		},
	}

	if jsonMsg, err := SerializeMessage(welcome); err == nil {
		client.send <- jsonMsg
	}

	// Enviar a última pose conhecida, se houver
	h.poseLock.RLock()
	pose := h.lastPose
	h.poseLock.RUnlock()

	if pose != nil {
		if jsonMsg, err := SerializeMessage(*pose); err == nil {
			client.send <- jsonMsg
		}
	}
}

// Shutdown encerra graciosamente o hub
func (h *Hub) Shutdown() {
	h.cancel()
	// Aguardar um pequeno tempo para processamento finalizar
	time.Sleep(100 * time.Millisecond)
}

// closeAllClients fecha todas as conexões dos clientes
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger.Info("Fechando todas as conexões de clientes WebSocket")
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// ClientCount retorna o número atual de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// getClientByID retorna um cliente pelo seu ID
func (h *Hub) getClientByID(clientID string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.id == clientID {
			return client
		}
	}
	return nil
}

// sendPingToAllClients envia ping para todos os clientes
func (h *Hub) sendPingToAllClients() {
	ping := models.PingMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "ping",
			Timestamp: time.Now(),
		},
		Time: time.Now().UnixNano() / int64(time.Millisecond),
	}

	if jsonMsg, err := SerializeMessage(ping); err == nil {
		h.mu.RLock()
		if len(h.clients) > 0 {
			h.broadcast <- jsonMsg
		}
		h.mu.RUnlock()
	}
}

// palmMoved verifica se a palma (articulação 0) se deslocou mais de 1mm
func palmMoved(a, b models.HandSnapshot) bool {
	const minPalmChange = 0.001

	return abs(a[0].Position.X-b[0].Position.X) > minPalmChange ||
		abs(a[0].Position.Y-b[0].Position.Y) > minPalmChange ||
		abs(a[0].Position.Z-b[0].Position.Z) > minPalmChange
}

// abs retorna o valor absoluto de um float64
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
