package glove

import (
	"context"
	"sync"
	"time"

	"glove_go/internal/models"
	"glove_go/pkg/logger"
)

// Recorder captura frames calibrados de ambas as mãos a uma taxa fixa.
//
// Máquina de estados: Idle → Recording → Idle. Comandos fora de estado
// (Start durante gravação, Stop em Idle) são no-ops registrados em log.
// Start e Stop são síncronos: quando Stop retorna, a goroutine de captura
// já terminou e nenhum frame adicional será anexado. A gravação concluída
// fica disponível em LastRecording até ser substituída pela próxima.
type Recorder struct {
	store      *Store
	calibrator *Calibrator
	sampleRate time.Duration

	mu        sync.Mutex
	recording bool
	current   *models.Recording
	last      *models.Recording
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewRecorder cria um Recorder parado
func NewRecorder(store *Store, calibrator *Calibrator, sampleRate time.Duration) *Recorder {
	if sampleRate <= 0 {
		sampleRate = time.Second / 60
	}
	return &Recorder{
		store:      store,
		calibrator: calibrator,
		sampleRate: sampleRate,
	}
}

// IsRecording indica se há uma gravação em curso
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Start inicia uma nova gravação e retorna true. Se já houver gravação em
// curso, o comando é ignorado e retorna false. A gravação anterior concluída
// permanece em LastRecording até o próximo Stop.
func (r *Recorder) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		logger.Warn("Start ignorado: gravação já em andamento")
		return false
	}

	now := time.Now()
	r.current = &models.Recording{
		Frames:     make([]models.Frame, 0, 1024),
		SampleRate: r.sampleRate,
		StartedAt:  now,
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.recording = true

	go r.captureLoop(ctx, r.current, now, r.done)

	logger.Infof("Gravação iniciada (taxa de amostragem: %v)", r.sampleRate)
	return true
}

// Stop encerra a gravação em curso e retorna o número de frames capturados
// junto com true. Em Idle, é um no-op que retorna (0, false). Bloqueia até
// a goroutine de captura terminar: após o retorno, a gravação é imutável.
func (r *Recorder) Stop() (int, bool) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		logger.Warn("Stop ignorado: nenhuma gravação em andamento")
		return 0, false
	}
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	cancel()
	<-done

	r.mu.Lock()
	r.current.StoppedAt = time.Now()
	r.last = r.current
	r.current = nil
	r.recording = false
	count := r.last.FrameCount()
	r.mu.Unlock()

	logger.Infof("Gravação encerrada: %d frames capturados", count)
	return count, true
}

// LastRecording retorna a última gravação concluída (nil se nenhuma)
func (r *Recorder) LastRecording() *models.Recording {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// captureLoop anexa um frame por tick até o contexto ser cancelado.
// Só esta goroutine escreve em rec.Frames, por isso índice e elapsed são
// estritamente crescentes sem lock adicional.
func (r *Recorder) captureLoop(ctx context.Context, rec *models.Recording, startedAt time.Time, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.sampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			frame := models.Frame{
				Index:   len(rec.Frames),
				Elapsed: now.Sub(startedAt),
				Left:    r.calibrator.CalibratedSnapshot(r.store, models.HandLeft),
				Right:   r.calibrator.CalibratedSnapshot(r.store, models.HandRight),
			}
			rec.Frames = append(rec.Frames, frame)
		}
	}
}
