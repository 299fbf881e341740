package glove

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRecorder cria um gravador rápido para os testes
func newTestRecorder(rate time.Duration) *Recorder {
	store := NewStore()
	return NewRecorder(store, NewCalibrator(), rate)
}

func TestRecorderStartStop(t *testing.T) {
	recorder := newTestRecorder(time.Millisecond)

	assert.False(t, recorder.IsRecording())

	require.True(t, recorder.Start())
	assert.True(t, recorder.IsRecording())

	// Deixar alguns ticks acontecerem
	time.Sleep(50 * time.Millisecond)

	count, stopped := recorder.Stop()
	require.True(t, stopped)
	assert.False(t, recorder.IsRecording())
	assert.Greater(t, count, 0)

	// A contagem retornada corresponde à gravação disponível
	assert.Equal(t, count, recorder.LastRecording().FrameCount())
}

func TestRecorderDoubleStartIsNoOp(t *testing.T) {
	recorder := newTestRecorder(time.Millisecond)

	require.True(t, recorder.Start())
	defer recorder.Stop()

	// Segundo start é ignorado: a gravação em curso continua intacta
	assert.False(t, recorder.Start())
	assert.True(t, recorder.IsRecording())

	time.Sleep(20 * time.Millisecond)

	count, stopped := recorder.Stop()
	require.True(t, stopped)
	assert.Greater(t, count, 0)
}

func TestRecorderStopWithoutStartIsNoOp(t *testing.T) {
	recorder := newTestRecorder(time.Millisecond)

	// Stop em Idle não é erro: retorna zero frames e nada muda
	count, stopped := recorder.Stop()
	assert.Equal(t, 0, count)
	assert.False(t, stopped)
	assert.False(t, recorder.IsRecording())
	assert.Nil(t, recorder.LastRecording())
}

func TestRecorderFramesAreMonotonic(t *testing.T) {
	recorder := newTestRecorder(time.Millisecond)

	require.True(t, recorder.Start())
	time.Sleep(50 * time.Millisecond)
	count, stopped := recorder.Stop()
	require.True(t, stopped)
	require.Greater(t, count, 1)

	rec := recorder.LastRecording()
	frames := rec.Frames

	// Índices estritamente crescentes a partir de zero, elapsed sem duplicados
	for i, frame := range frames {
		assert.Equal(t, i, frame.Index)
		if i > 0 {
			assert.Greater(t, frame.Elapsed, frames[i-1].Elapsed)
		}
	}
}

func TestRecorderStopIsSynchronous(t *testing.T) {
	// Depois de Stop retornar, nenhum frame adicional é anexado
	recorder := newTestRecorder(time.Millisecond)

	require.True(t, recorder.Start())
	time.Sleep(20 * time.Millisecond)

	count, stopped := recorder.Stop()
	require.True(t, stopped)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, count, recorder.LastRecording().FrameCount())
}

func TestRecorderNewRecordingReplacesLast(t *testing.T) {
	recorder := newTestRecorder(time.Millisecond)

	require.True(t, recorder.Start())
	time.Sleep(20 * time.Millisecond)
	first, stopped := recorder.Stop()
	require.True(t, stopped)
	require.Greater(t, first, 0)

	// A gravação anterior permanece disponível durante a nova gravação
	require.True(t, recorder.Start())
	assert.Equal(t, first, recorder.LastRecording().FrameCount())

	time.Sleep(20 * time.Millisecond)
	second, stopped := recorder.Stop()
	require.True(t, stopped)
	assert.Equal(t, second, recorder.LastRecording().FrameCount())
}

func TestRecorderInfoMetadata(t *testing.T) {
	recorder := newTestRecorder(time.Millisecond)

	require.True(t, recorder.Start())
	time.Sleep(20 * time.Millisecond)
	count, stopped := recorder.Stop()
	require.True(t, stopped)

	info := recorder.LastRecording().Info()
	assert.Equal(t, count, info.FrameCount)
	assert.Equal(t, time.Millisecond, info.SampleRate)
	assert.False(t, info.StartedAt.IsZero())
	assert.False(t, info.StoppedAt.IsZero())
	assert.Greater(t, info.Duration, time.Duration(0))
}
