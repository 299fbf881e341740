package models

import "time"

// Frame é a unidade de uma gravação: um par de snapshots completos (ambas as
// mãos), já calibrados, com índice e tempo decorrido desde o início da
// gravação. Imutável depois de anexado.
type Frame struct {
	Index   int           `json:"index"`
	Elapsed time.Duration `json:"elapsed"`
	Left    HandSnapshot  `json:"left"`
	Right   HandSnapshot  `json:"right"`
}

// Recording é uma sequência ordenada e somente-anexável de frames.
// Invariantes: índices estritamente crescentes, timestamps sem duplicados.
type Recording struct {
	Frames     []Frame       `json:"frames"`
	SampleRate time.Duration `json:"sampleRate"`
	StartedAt  time.Time     `json:"startedAt"`
	StoppedAt  time.Time     `json:"stoppedAt,omitempty"`
}

// FrameCount retorna o número de frames capturados
func (r *Recording) FrameCount() int {
	if r == nil {
		return 0
	}
	return len(r.Frames)
}

// Duration retorna o tempo coberto pela gravação (elapsed do último frame)
func (r *Recording) Duration() time.Duration {
	if r == nil || len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].Elapsed
}

// Info retorna os metadados da gravação para a API
func (r *Recording) Info() RecordingInfo {
	info := RecordingInfo{}
	if r == nil {
		return info
	}
	info.FrameCount = len(r.Frames)
	info.SampleRate = r.SampleRate
	info.StartedAt = r.StartedAt
	info.StoppedAt = r.StoppedAt
	info.Duration = r.Duration()
	return info
}

// RecordingInfo contém os metadados de uma gravação
type RecordingInfo struct {
	FrameCount int           `json:"frameCount"`
	SampleRate time.Duration `json:"sampleRate"`
	Duration   time.Duration `json:"duration"`
	StartedAt  time.Time     `json:"startedAt,omitempty"`
	StoppedAt  time.Time     `json:"stoppedAt,omitempty"`
}

// SnapshotExport é o registo produzido por um pedido de exportação: um
// snapshot calibrado de ambas as mãos com o timestamp de captura usado para
// nomear o ficheiro de destino.
type SnapshotExport struct {
	Timestamp   time.Time    `json:"timestamp"`
	Left        HandSnapshot `json:"left"`
	Right       HandSnapshot `json:"right"`
	DeviceLeft  string       `json:"deviceLeft,omitempty"`
	DeviceRight string       `json:"deviceRight,omitempty"`
}
