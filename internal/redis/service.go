package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"glove_go/internal/config"
	"glove_go/internal/models"
	"glove_go/pkg/logger"
)

// Service gerencia a conexão e operações com o Redis
type Service struct {
	client    *redis.Client
	ctx       context.Context
	cancel    context.CancelFunc
	prefix    string
	config    config.RedisConfig
	connected bool
	mutex     sync.RWMutex

	// Tamanho máximo do histórico de trajetória da palma
	maxPalmHistorySize int
}

// NewService cria um novo serviço Redis
func NewService(cfg config.RedisConfig) (*Service, error) {
	if !cfg.Enabled {
		logger.Info("Serviço Redis desabilitado por configuração")
		return &Service{
			config:             cfg,
			connected:          false,
			maxPalmHistorySize: 1000,
		}, nil
	}

	// Criar contexto cancelável
	ctx, cancel := context.WithCancel(context.Background())

	// Configurar endereço
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	// Criar cliente Redis
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Criar serviço
	service := &Service{
		client:             client,
		ctx:                ctx,
		cancel:             cancel,
		prefix:             cfg.Prefix,
		config:             cfg,
		maxPalmHistorySize: 1000,
	}

	// Testar conexão
	if err := service.TestConnection(); err != nil {
		logger.Warnf("Aviso: %v. O Redis será utilizado em modo offline.", err)
		service.connected = false
		return service, nil
	}

	service.connected = true
	return service, nil
}

// TestConnection testa a conexão com o Redis
func (s *Service) TestConnection() error {
	if !s.config.Enabled {
		return fmt.Errorf("serviço Redis desabilitado")
	}

	result, err := s.client.Ping(s.ctx).Result()
	if err != nil {
		return fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}

	logger.Infof("Conexão com o Redis estabelecida. Resposta: %s", result)
	s.connected = true
	return nil
}

// IsConnected verifica se o serviço está conectado
func (s *Service) IsConnected() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.connected && s.config.Enabled
}

// WritePose escreve a pose calibrada atual no Redis
func (s *Service) WritePose(pose models.PoseMessage) error {
	s.mutex.RLock()
	if !s.connected || !s.config.Enabled {
		s.mutex.RUnlock()
		return nil
	}
	s.mutex.RUnlock()

	// Criar uma pipeline para enviar vários comandos de uma vez
	pipe := s.client.Pipeline()
	timestamp := time.Now().UnixNano() / int64(time.Millisecond)

	pipe.Set(s.ctx, fmt.Sprintf("%s:timestamp", s.prefix), timestamp, 0)
	pipe.Set(s.ctx, fmt.Sprintf("%s:packets:left", s.prefix), pose.PacketsLeft, 0)
	pipe.Set(s.ctx, fmt.Sprintf("%s:packets:right", s.prefix), pose.PacketsRight, 0)

	// Armazenar a pose de cada mão como JSON
	hands := []struct {
		name string
		snap models.HandSnapshot
	}{
		{"left", pose.Left},
		{"right", pose.Right},
	}

	for _, hand := range hands {
		jsonData, err := json.Marshal(hand.snap)
		if err != nil {
			continue
		}
		pipe.Set(s.ctx, fmt.Sprintf("%s:pose:%s", s.prefix, hand.name), string(jsonData), 0)

		// Armazenar a trajetória da palma no histórico com timestamp
		palm := hand.snap[0].Position
		point := map[string]interface{}{
			"x": palm.X,
			"y": palm.Y,
			"z": palm.Z,
			"t": timestamp,
		}
		pointData, err := json.Marshal(point)
		if err != nil {
			continue
		}

		histKey := fmt.Sprintf("%s:palm:%s:history", s.prefix, hand.name)
		pipe.ZAdd(s.ctx, histKey, &redis.Z{
			Score:  float64(timestamp),
			Member: string(pointData),
		})

		// Limitando o tamanho do histórico
		limit := int64(-1 * (s.maxPalmHistorySize + 1))
		pipe.ZRemRangeByRank(s.ctx, histKey, 0, limit)
	}

	// Executa a pipeline
	_, err := pipe.Exec(s.ctx)
	if err != nil {
		s.mutex.Lock()
		s.connected = false
		s.mutex.Unlock()
		return fmt.Errorf("erro ao escrever pose no Redis: %w", err)
	}

	return nil
}

// WriteStatus escreve o status do rastreador no Redis
func (s *Service) WriteStatus(status models.TrackerStatus) error {
	s.mutex.RLock()
	if !s.connected || !s.config.Enabled {
		s.mutex.RUnlock()
		return nil
	}
	s.mutex.RUnlock()

	// Criar uma pipeline para enviar vários comandos
	pipe := s.client.Pipeline()

	// Armazenar status básico
	pipe.Set(s.ctx, fmt.Sprintf("%s:status", s.prefix), status.Status, 0)
	pipe.Set(s.ctx, fmt.Sprintf("%s:timestamp", s.prefix),
		status.Timestamp.UnixNano()/int64(time.Millisecond), 0)
	pipe.Set(s.ctx, fmt.Sprintf("%s:decode_errors", s.prefix), status.DecodeErrors, 0)
	pipe.Set(s.ctx, fmt.Sprintf("%s:recording", s.prefix), status.Recording, 0)
	pipe.Set(s.ctx, fmt.Sprintf("%s:playing", s.prefix), status.Playing, 0)

	// Armazenar informações de erro, se houver
	if status.LastError != "" {
		pipe.Set(s.ctx, fmt.Sprintf("%s:ultimo_erro", s.prefix), status.LastError, 0)
	}

	// Executar pipeline
	_, err := pipe.Exec(s.ctx)
	if err != nil {
		s.mutex.Lock()
		s.connected = false
		s.mutex.Unlock()
		return fmt.Errorf("erro ao escrever status no Redis: %w", err)
	}

	return nil
}

// GetCurrentPose obtém a última pose armazenada de uma mão
func (s *Service) GetCurrentPose(hand models.Hand) (models.HandSnapshot, error) {
	var snap models.HandSnapshot

	s.mutex.RLock()
	if !s.connected || !s.config.Enabled {
		s.mutex.RUnlock()
		return snap, fmt.Errorf("Redis não conectado ou desabilitado")
	}
	s.mutex.RUnlock()

	poseCmd := s.client.Get(s.ctx, fmt.Sprintf("%s:pose:%s", s.prefix, hand))
	if poseCmd.Err() != nil {
		return snap, fmt.Errorf("erro ao obter pose: %w", poseCmd.Err())
	}

	if err := json.Unmarshal([]byte(poseCmd.Val()), &snap); err != nil {
		return snap, fmt.Errorf("erro ao descodificar pose: %w", err)
	}

	return snap, nil
}

// GetPalmHistory obtém a trajetória recente da palma de uma mão
func (s *Service) GetPalmHistory(hand models.Hand) ([]models.PalmPoint, error) {
	s.mutex.RLock()
	if !s.connected || !s.config.Enabled {
		s.mutex.RUnlock()
		return nil, fmt.Errorf("Redis não conectado ou desabilitado")
	}
	s.mutex.RUnlock()

	// Obter histórico
	historyKey := fmt.Sprintf("%s:palm:%s:history", s.prefix, hand)
	dataCmd := s.client.ZRangeWithScores(s.ctx, historyKey, 0, -1)
	if dataCmd.Err() != nil {
		return nil, fmt.Errorf("erro ao obter histórico da palma: %w", dataCmd.Err())
	}

	// Processar resultados
	results := dataCmd.Val()
	history := make([]models.PalmPoint, 0, len(results))

	for _, item := range results {
		member, ok := item.Member.(string)
		if !ok {
			continue
		}

		var pointData map[string]float64
		if err := json.Unmarshal([]byte(member), &pointData); err != nil {
			continue
		}

		point := models.PalmPoint{
			Hand:      hand.String(),
			Timestamp: time.Unix(0, int64(item.Score)*int64(time.Millisecond)),
		}
		point.Position.X = pointData["x"]
		point.Position.Y = pointData["y"]
		point.Position.Z = pointData["z"]

		history = append(history, point)
	}

	return history, nil
}

// GetStatus obtém o status atual do Redis
func (s *Service) GetStatus() (*models.TrackerStatus, error) {
	s.mutex.RLock()
	if !s.connected || !s.config.Enabled {
		s.mutex.RUnlock()
		return nil, fmt.Errorf("Redis não conectado ou desabilitado")
	}
	s.mutex.RUnlock()

	// Obter status e timestamp
	statusCmd := s.client.Get(s.ctx, fmt.Sprintf("%s:status", s.prefix))
	if statusCmd.Err() != nil {
		return nil, fmt.Errorf("erro ao obter status: %w", statusCmd.Err())
	}

	timestampCmd := s.client.Get(s.ctx, fmt.Sprintf("%s:timestamp", s.prefix))
	if timestampCmd.Err() != nil && timestampCmd.Err() != redis.Nil {
		return nil, fmt.Errorf("erro ao obter timestamp: %w", timestampCmd.Err())
	}

	// Obter informações de erro
	lastErrorCmd := s.client.Get(s.ctx, fmt.Sprintf("%s:ultimo_erro", s.prefix))

	// Construir objeto de status
	status := &models.TrackerStatus{
		Status:    statusCmd.Val(),
		Timestamp: time.Now(), // Valor padrão
	}

	// Processar timestamp se disponível
	if timestampCmd.Err() == nil {
		ts, err := timestampCmd.Int64()
		if err == nil {
			status.Timestamp = time.Unix(0, ts*int64(time.Millisecond))
		}
	}

	// Processar erro se disponível
	if lastErrorCmd.Err() == nil {
		status.LastError = lastErrorCmd.Val()
	}

	return status, nil
}

// Shutdown encerra graciosamente o serviço Redis
func (s *Service) Shutdown() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	if s.client != nil {
		if err := s.client.Close(); err != nil {
			logger.Errorf("Erro ao fechar conexão com Redis: %v", err)
		} else {
			logger.Info("Conexão com o Redis fechada")
		}
	}

	s.connected = false
}
