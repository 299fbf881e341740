package glove

import (
	"context"
	"errors"
	"sync"
	"time"

	"glove_go/internal/models"
	"glove_go/pkg/logger"
)

// ErrEmptyRecording indica um startPlayback sem frames para reproduzir
var ErrEmptyRecording = errors.New("gravação vazia: nada para reproduzir")

// FrameFunc é chamada pelo reprodutor a cada frame avançado
type FrameFunc func(frame models.Frame, frameCount int)

// Player reproduz uma gravação concluída em loop contínuo.
//
// Máquina de estados: Stopped → Playing → Stopped. Comandos fora de estado
// (Start durante reprodução, Stop em Stopped) são no-ops registrados em
// log. A gravação é tratada como somente-leitura: o reprodutor nunca altera
// os frames. Ao chegar ao último frame, o índice volta a zero e a
// reprodução continua até Stop.
type Player struct {
	mu        sync.Mutex
	playing   bool
	recording *models.Recording
	index     int // próximo frame a emitir
	current   int // último frame emitido
	cancel    context.CancelFunc
	done      chan struct{}
	onFrame   FrameFunc
}

// NewPlayer cria um Player parado. onFrame pode ser nil.
func NewPlayer(onFrame FrameFunc) *Player {
	return &Player{onFrame: onFrame}
}

// IsPlaying indica se há reprodução em curso
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Start inicia a reprodução em loop da gravação indicada, à cadência em que
// foi capturada. Gravações nulas ou sem frames são rejeitadas com
// ErrEmptyRecording; com reprodução já em curso, o comando é ignorado.
func (p *Player) Start(rec *models.Recording) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		logger.Warn("Start ignorado: reprodução já em andamento")
		return nil
	}
	if rec.FrameCount() == 0 {
		return ErrEmptyRecording
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.recording = rec
	p.index = 0
	p.current = 0
	p.cancel = cancel
	p.done = make(chan struct{})
	p.playing = true

	go p.playLoop(ctx, rec, p.done)

	logger.Infof("Reprodução iniciada: %d frames em loop (%v por frame)",
		rec.FrameCount(), rec.SampleRate)
	return nil
}

// Stop encerra a reprodução; em Stopped é um no-op. Bloqueia até a
// goroutine terminar: após o retorno, nenhum frame adicional é emitido.
func (p *Player) Stop() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		logger.Warn("Stop ignorado: nenhuma reprodução em andamento")
		return
	}
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done

	p.mu.Lock()
	p.playing = false
	p.recording = nil
	p.mu.Unlock()

	logger.Info("Reprodução encerrada")
}

// CurrentFrame retorna o último frame emitido pela reprodução, o mesmo que
// os clientes WebSocket acabaram de receber (nil se parado; frame zero
// antes do primeiro tick).
func (p *Player) CurrentFrame() *models.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing || p.recording == nil {
		return nil
	}
	frame := p.recording.Frames[p.current]
	return &frame
}

// playLoop avança o índice a cada tick, voltando a zero após o último frame
func (p *Player) playLoop(ctx context.Context, rec *models.Recording, done chan struct{}) {
	defer close(done)

	rate := rec.SampleRate
	if rate <= 0 {
		rate = time.Second / 60
	}

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	count := rec.FrameCount()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			frame := rec.Frames[p.index]
			p.current = p.index
			p.index = (p.index + 1) % count
			p.mu.Unlock()

			if p.onFrame != nil {
				p.onFrame(frame, count)
			}
		}
	}
}
