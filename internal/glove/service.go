package glove

import (
	"context"
	"errors"
	"sync"
	"time"

	"glove_go/internal/config"
	"glove_go/internal/export"
	"glove_go/internal/models"
	"glove_go/internal/redis"
	"glove_go/internal/websocket"
	"glove_go/pkg/logger"
)

// ErrNoData indica um pedido de exportação antes de qualquer pacote aceito
var ErrNoData = errors.New("nenhum dado de pose recebido até agora")

// Service orquestra o rastreamento das luvas: escuta UDP, estado das
// articulações, calibração, gravação, reprodução e difusão para os clientes.
//
// Todos os comandos são síncronos: quando o método retorna, a transição de
// estado já aconteceu e o valor retornado a reflete.
type Service struct {
	config       config.TrackerConfig
	store        *Store
	calibrator   *Calibrator
	recorder     *Recorder
	player       *Player
	listener     *Listener
	exporter     *export.Writer
	redisService *redis.Service
	wsHub        *websocket.Hub

	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	mutex   sync.RWMutex
	status  models.TrackerStatus

	// Flag para envio assíncrono para o Redis
	asyncRedis bool
}

// NewService cria um novo serviço de rastreamento das luvas
func NewService(cfg *config.Config, redisService *redis.Service, wsHub *websocket.Hub) (*Service, error) {
	ctx, cancel := context.WithCancel(context.Background())

	store := NewStore()
	calibrator := NewCalibrator()

	service := &Service{
		config:       cfg.Tracker,
		store:        store,
		calibrator:   calibrator,
		recorder:     NewRecorder(store, calibrator, cfg.Recorder.SampleRate),
		listener:     NewListener(cfg.Tracker.Host, cfg.Tracker.Ports, store, cfg.Tracker.Debug),
		exporter:     export.NewWriter(cfg.Export.Dir, cfg.Export.IncludeOrientation),
		redisService: redisService,
		wsHub:        wsHub,
		ctx:          ctx,
		cancel:       cancel,
		asyncRedis:   true, // Ativar por padrão
		status: models.TrackerStatus{
			Status:    "initializing",
			Timestamp: time.Now(),
		},
	}

	// O reprodutor difunde cada frame avançado via WebSocket
	service.player = NewPlayer(func(frame models.Frame, frameCount int) {
		if service.wsHub != nil {
			service.wsHub.BroadcastPlaybackFrame(frame, frameCount)
		}
	})

	return service, nil
}

// Start inicia o serviço: abre os sockets UDP e inicia a difusão periódica.
// Falha de bind é fatal: o serviço não opera com escuta parcial.
func (s *Service) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return nil
	}

	logger.Infof("Iniciando serviço das luvas (host: %s, portas: %v)",
		s.config.Host, s.config.Ports)

	if err := s.listener.Start(); err != nil {
		s.setStatusLocked("falha_bind", err.Error())
		return err
	}

	go s.broadcastLoop()

	s.running = true
	s.setStatusLocked("ok", "")
	return nil
}

// Stop para o serviço, encerrando gravação e reprodução em curso
func (s *Service) Stop() {
	s.mutex.Lock()
	if !s.running {
		s.mutex.Unlock()
		return
	}
	s.running = false
	s.mutex.Unlock()

	logger.Info("Parando serviço das luvas")

	if s.recorder.IsRecording() {
		s.recorder.Stop()
	}
	if s.player.IsPlaying() {
		s.player.Stop()
	}

	s.cancel()
	s.listener.Stop()
}

// IsRunning verifica se o serviço está em execução
func (s *Service) IsRunning() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.running
}

// Recalibrate captura a pose atual como a nova baseline de calibração
func (s *Service) Recalibrate() models.CalibrationBaseline {
	baseline := s.calibrator.Recalibrate(s.store)
	s.updateStatus("ok", "")
	return baseline
}

// StartRecording inicia uma nova gravação de movimento. Com gravação já
// em curso, o comando é um no-op.
func (s *Service) StartRecording() {
	if !s.recorder.Start() {
		return
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastRecordingEvent("started", 0)
	}
	s.updateStatus("ok", "")
}

// StopRecording encerra a gravação e retorna o número de frames capturados.
// Sem gravação em curso, é um no-op que retorna 0.
func (s *Service) StopRecording() int {
	count, stopped := s.recorder.Stop()
	if !stopped {
		return 0
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastRecordingEvent("stopped", count)
	}
	s.updateStatus("ok", "")
	return count
}

// StartPlayback inicia a reprodução em loop da última gravação concluída.
// Falha com ErrEmptyRecording se não houver frames para reproduzir; com
// reprodução já em curso, é um no-op.
func (s *Service) StartPlayback() error {
	if err := s.player.Start(s.recorder.LastRecording()); err != nil {
		return err
	}

	s.updateStatus("ok", "")
	return nil
}

// StopPlayback encerra a reprodução em curso; parado, é um no-op
func (s *Service) StopPlayback() {
	s.player.Stop()
	s.updateStatus("ok", "")
}

// CurrentPlaybackFrame retorna o frame atual da reprodução (nil se parada)
func (s *Service) CurrentPlaybackFrame() *models.Frame {
	return s.player.CurrentFrame()
}

// LastRecordingInfo retorna os metadados da última gravação concluída
func (s *Service) LastRecordingInfo() models.RecordingInfo {
	return s.recorder.LastRecording().Info()
}

// ExportSnapshot escreve a pose calibrada atual em CSV e retorna o caminho
// do ficheiro. Falha com ErrNoData se nenhum pacote foi aceito ainda.
func (s *Service) ExportSnapshot() (string, error) {
	if s.store.LastUpdate(models.HandLeft).IsZero() &&
		s.store.LastUpdate(models.HandRight).IsZero() {
		return "", ErrNoData
	}

	snapshot := models.SnapshotExport{
		Timestamp:   time.Now(),
		Left:        s.calibrator.CalibratedSnapshot(s.store, models.HandLeft),
		Right:       s.calibrator.CalibratedSnapshot(s.store, models.HandRight),
		DeviceLeft:  s.store.Device(models.HandLeft),
		DeviceRight: s.store.Device(models.HandRight),
	}

	path, err := s.exporter.Export(snapshot)
	if err != nil {
		s.updateStatus("falha_exportacao", err.Error())
		return "", err
	}

	s.updateStatus("ok", "")
	return path, nil
}

// Snapshot retorna a pose calibrada atual de uma mão
func (s *Service) Snapshot(hand models.Hand) models.HandSnapshot {
	return s.calibrator.CalibratedSnapshot(s.store, hand)
}

// PacketCounts retorna os contadores de pacotes e erros de descodificação
func (s *Service) PacketCounts() (left, right, decodeErrors int64) {
	return s.store.PacketCount(models.HandLeft),
		s.store.PacketCount(models.HandRight),
		s.store.DecodeErrors()
}

// GetStatus retorna o status atual do rastreador
func (s *Service) GetStatus() models.TrackerStatus {
	s.mutex.RLock()
	status := s.status
	s.mutex.RUnlock()

	// Campos dinâmicos sempre atualizados na leitura
	status.PacketsLeft = s.store.PacketCount(models.HandLeft)
	status.PacketsRight = s.store.PacketCount(models.HandRight)
	status.DecodeErrors = s.store.DecodeErrors()
	status.DeviceLeft = s.store.Device(models.HandLeft)
	status.DeviceRight = s.store.Device(models.HandRight)
	status.Recording = s.recorder.IsRecording()
	status.Playing = s.player.IsPlaying()

	return status
}

// SetAsyncRedis configura o envio assíncrono para o Redis
func (s *Service) SetAsyncRedis(async bool) {
	s.asyncRedis = async
}

// broadcastLoop difunde a pose calibrada a uma taxa fixa
func (s *Service) broadcastLoop() {
	ticker := time.NewTicker(s.config.BroadcastRate)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.broadcastPose()
		}
	}
}

// broadcastPose monta a pose calibrada atual e a envia aos consumidores
func (s *Service) broadcastPose() {
	pose := websocket.NewPoseMessage(
		s.calibrator.CalibratedSnapshot(s.store, models.HandLeft),
		s.calibrator.CalibratedSnapshot(s.store, models.HandRight),
		s.store.PacketCount(models.HandLeft),
		s.store.PacketCount(models.HandRight),
		s.store.Device(models.HandLeft),
		s.store.Device(models.HandRight),
	)

	// PRIORIDADE 1: Enviar para o WebSocket imediatamente
	if s.wsHub != nil {
		s.wsHub.BroadcastPose(pose)
	}

	// PRIORIDADE 2: Salvar no Redis (potencialmente assíncrono)
	if s.redisService != nil && s.redisService.IsConnected() {
		if s.asyncRedis {
			// Usar goroutine para não bloquear o ciclo de difusão
			go func(p models.PoseMessage) {
				if err := s.redisService.WritePose(p); err != nil {
					logger.Errorf("Erro ao escrever pose no Redis: %v", err)
				}
			}(pose)
		} else {
			if err := s.redisService.WritePose(pose); err != nil {
				logger.Errorf("Erro ao escrever pose no Redis: %v", err)
			}
		}
	}
}

// updateStatus atualiza o status do rastreador
func (s *Service) updateStatus(status string, errorMsg string) {
	s.mutex.Lock()
	s.setStatusLocked(status, errorMsg)
	s.mutex.Unlock()
}

// setStatusLocked atualiza o status; o chamador deve deter o lock
func (s *Service) setStatusLocked(status string, errorMsg string) {
	s.status = models.TrackerStatus{
		Status:    status,
		Timestamp: time.Now(),
		LastError: errorMsg,
	}

	// Atualizar status no Redis
	if s.redisService != nil && s.redisService.IsConnected() {
		s.redisService.WriteStatus(s.status)
	}

	// Enviar atualização de status via WebSocket
	if s.wsHub != nil {
		s.wsHub.BroadcastStatus(s.status)
	}

	if status != "ok" {
		logger.Warnf("Status do rastreador alterado para %s: %s", status, errorMsg)
	}
}
