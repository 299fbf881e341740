package glove

import (
	"sync"
	"time"

	"glove_go/internal/models"
	"glove_go/pkg/logger"
	"glove_go/pkg/utils"
)

// Calibrator mantém a baseline de calibração e aplica a correção às
// amostras cruas.
//
// Recalibrate substitui a baseline por inteiro sob lock de escrita; Apply é
// uma função pura sobre a baseline lida sob lock de leitura, por isso as
// leituras durante uma recalibração veem ou a baseline antiga ou a nova,
// nunca uma mistura.
type Calibrator struct {
	mu       sync.RWMutex
	baseline models.CalibrationBaseline
}

// NewCalibrator cria um Calibrator com a baseline identidade: até a primeira
// recalibração, Apply devolve as amostras cruas inalteradas.
func NewCalibrator() *Calibrator {
	return &Calibrator{baseline: models.IdentityBaseline()}
}

// Recalibrate captura a pose atual de ambas as mãos como a nova baseline.
// A pose capturada passa a ser o "zero": aplicada a si mesma produz posição
// nula e orientação identidade.
func (c *Calibrator) Recalibrate(store *Store) models.CalibrationBaseline {
	baseline := models.CalibrationBaseline{
		Left:      store.Snapshot(models.HandLeft),
		Right:     store.Snapshot(models.HandRight),
		Timestamp: time.Now(),
	}

	c.mu.Lock()
	c.baseline = baseline
	c.mu.Unlock()

	logger.Infof("Calibração capturada em %s", utils.FormatDateTimeMs(baseline.Timestamp))
	return baseline
}

// Baseline retorna uma cópia da baseline atual
func (c *Calibrator) Baseline() models.CalibrationBaseline {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseline
}

// Reset restaura a baseline identidade (descarta qualquer calibração)
func (c *Calibrator) Reset() {
	c.mu.Lock()
	c.baseline = models.IdentityBaseline()
	c.mu.Unlock()
}

// Apply aplica a correção de calibração a uma amostra crua:
//
//	posição    corrigida = crua − baseline
//	orientação corrigida = q_crua ⊗ q_baseline⁻¹ (normalizada)
//
// Função pura: não altera a amostra de entrada nem a baseline.
func (c *Calibrator) Apply(sample models.JointSample) models.JointSample {
	c.mu.RLock()
	base := c.baseline.ForHand(sample.Hand)[sample.Joint]
	c.mu.RUnlock()

	return applyBaseline(sample, base)
}

// CalibratedSnapshot retorna o snapshot atual de uma mão com a calibração
// aplicada a todas as articulações sob uma única leitura da baseline.
func (c *Calibrator) CalibratedSnapshot(store *Store, hand models.Hand) models.HandSnapshot {
	raw := store.Snapshot(hand)

	c.mu.RLock()
	base := c.baseline.ForHand(hand)
	c.mu.RUnlock()

	var out models.HandSnapshot
	for j := 0; j < models.NumJoints; j++ {
		out[j] = applyBaseline(raw[j], base[j])
	}
	return out
}

// applyBaseline corrige uma amostra contra a pose de referência da mesma
// articulação
func applyBaseline(sample models.JointSample, base models.JointSample) models.JointSample {
	corrected := sample
	corrected.Position = sample.Position.Sub(base.Position)
	corrected.Orientation = sample.Orientation.Mul(base.Orientation.Inverse()).Normalize()
	return corrected
}
