package glove

import (
	"sync"
	"sync/atomic"
	"time"

	"glove_go/internal/models"
)

// Store guarda a amostra mais recente de cada articulação de cada mão.
//
// A sincronização é feita por slot: cada par (mão, articulação) tem o seu
// próprio RWMutex, de modo que as seis goroutines de escuta nunca disputam
// um lock global entre si nem com os leitores (broadcast, gravador,
// exportação). Os contadores de pacotes são atómicos e ficam fora dos locks.
type Store struct {
	mu      [models.NumHands][models.NumJoints]sync.RWMutex
	samples [models.NumHands][models.NumJoints]models.JointSample

	packets      [models.NumHands]int64
	decodeErrors int64
	lastUpdate   [models.NumHands]int64 // UnixNano da última escrita aceita por mão

	deviceMu sync.RWMutex
	devices  [models.NumHands]string
}

// NewStore cria um Store com todas as articulações na pose neutra
// (posição zero, quaternião identidade).
func NewStore() *Store {
	s := &Store{}
	for h := 0; h < models.NumHands; h++ {
		for j := 0; j < models.NumJoints; j++ {
			s.samples[h][j] = models.UnsetSample(models.Hand(h), j)
		}
	}
	return s
}

// Update substitui a amostra do slot correspondente e incrementa o contador
// de pacotes da mão. A amostra é gravada por inteiro, nunca campo a campo.
func (s *Store) Update(sample models.JointSample) {
	if !sample.Hand.Valid() || sample.Joint < 0 || sample.Joint >= models.NumJoints {
		return
	}

	h, j := int(sample.Hand), sample.Joint

	s.mu[h][j].Lock()
	s.samples[h][j] = sample
	s.mu[h][j].Unlock()

	atomic.AddInt64(&s.packets[h], 1)
	atomic.StoreInt64(&s.lastUpdate[h], time.Now().UnixNano())
}

// Joint retorna a amostra atual de uma articulação
func (s *Store) Joint(hand models.Hand, joint int) models.JointSample {
	if !hand.Valid() || joint < 0 || joint >= models.NumJoints {
		return models.UnsetSample(hand, joint)
	}

	h := int(hand)
	s.mu[h][joint].RLock()
	sample := s.samples[h][joint]
	s.mu[h][joint].RUnlock()
	return sample
}

// Snapshot retorna uma cópia pontual das 26 articulações de uma mão.
// Cada slot é lido sob o seu próprio lock; o snapshot é coerente por
// articulação, não atómico entre articulações.
func (s *Store) Snapshot(hand models.Hand) models.HandSnapshot {
	var snap models.HandSnapshot
	if !hand.Valid() {
		return snap
	}

	h := int(hand)
	for j := 0; j < models.NumJoints; j++ {
		s.mu[h][j].RLock()
		snap[j] = s.samples[h][j]
		s.mu[h][j].RUnlock()
	}
	return snap
}

// PacketCount retorna o total de pacotes aceitos para a mão indicada
func (s *Store) PacketCount(hand models.Hand) int64 {
	if !hand.Valid() {
		return 0
	}
	return atomic.LoadInt64(&s.packets[int(hand)])
}

// RecordDecodeError incrementa o contador de datagramas descartados
func (s *Store) RecordDecodeError() {
	atomic.AddInt64(&s.decodeErrors, 1)
}

// DecodeErrors retorna o total de datagramas descartados por malformação
func (s *Store) DecodeErrors() int64 {
	return atomic.LoadInt64(&s.decodeErrors)
}

// LastUpdate retorna o instante da última amostra aceita para a mão
// indicada (zero se nenhuma). Cada mão tem o seu próprio carimbo: pacotes
// de uma luva não mascaram o silêncio da outra.
func (s *Store) LastUpdate(hand models.Hand) time.Time {
	if !hand.Valid() {
		return time.Time{}
	}
	nanos := atomic.LoadInt64(&s.lastUpdate[int(hand)])
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}

// SetDevice regista o rótulo de dispositivo anunciado por uma luva
func (s *Store) SetDevice(hand models.Hand, name string) {
	if !hand.Valid() {
		return
	}
	s.deviceMu.Lock()
	s.devices[int(hand)] = name
	s.deviceMu.Unlock()
}

// Device retorna o rótulo de dispositivo da mão (vazio se nunca anunciado)
func (s *Store) Device(hand models.Hand) string {
	if !hand.Valid() {
		return ""
	}
	s.deviceMu.RLock()
	name := s.devices[int(hand)]
	s.deviceMu.RUnlock()
	return name
}
