package models

import (
	"fmt"
	"strings"
	"time"

	"glove_go/pkg/utils"
)

// NumJoints é o número de articulações rastreadas por mão (indexação OpenXR)
const NumJoints = 26

// JointNames contém os nomes das 26 articulações OpenXR, na ordem exata dos índices
var JointNames = [NumJoints]string{
	"Palm",
	"Wrist",
	"Thumb metacarpal",
	"Thumb proximal",
	"Thumb distal",
	"Thumb tip",
	"Index metacarpal",
	"Index proximal",
	"Index intermediate",
	"Index distal",
	"Index tip",
	"Middle metacarpal",
	"Middle proximal",
	"Middle intermediate",
	"Middle distal",
	"Middle tip",
	"Ring metacarpal",
	"Ring proximal",
	"Ring intermediate",
	"Ring distal",
	"Ring tip",
	"Little metacarpal",
	"Little proximal",
	"Little intermediate",
	"Little distal",
	"Little tip",
}

// Hand identifica a mão esquerda ou direita
type Hand int

const (
	// HandLeft é a mão esquerda
	HandLeft Hand = iota
	// HandRight é a mão direita
	HandRight
)

// NumHands é o número de mãos rastreadas
const NumHands = 2

// String retorna o nome da mão
func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid verifica se o valor identifica uma mão conhecida
func (h Hand) Valid() bool {
	return h == HandLeft || h == HandRight
}

// ParseHand converte um token de endereço em uma mão.
// Aceita as formas usadas pelas luvas: "left"/"l" e "right"/"r".
func ParseHand(token string) (Hand, error) {
	switch strings.ToLower(token) {
	case "left", "l":
		return HandLeft, nil
	case "right", "r":
		return HandRight, nil
	default:
		return 0, fmt.Errorf("mão desconhecida: %q", token)
	}
}

// JointSample representa a amostra mais recente de uma articulação.
// Imutável depois de construída: o Store substitui a amostra inteira,
// nunca altera campos individuais.
type JointSample struct {
	Hand        Hand             `json:"-"`
	Joint       int              `json:"joint"`
	Position    utils.Vector3    `json:"position"`
	Orientation utils.Quaternion `json:"orientation"`
}

// UnsetSample retorna o valor sentinela para uma articulação que ainda não
// recebeu dados: posição zero e quaternião identidade (pose neutra definida,
// nunca memória indefinida).
func UnsetSample(hand Hand, joint int) JointSample {
	return JointSample{
		Hand:        hand,
		Joint:       joint,
		Orientation: utils.IdentityQuaternion(),
	}
}

// HandSnapshot é uma leitura pontual das 26 articulações de uma mão
type HandSnapshot [NumJoints]JointSample

// CalibrationBaseline guarda, por mão e por articulação, a pose considerada
// "zero". É substituída por inteiro a cada recalibração.
type CalibrationBaseline struct {
	Left      HandSnapshot `json:"left"`
	Right     HandSnapshot `json:"right"`
	Timestamp time.Time    `json:"timestamp"`
}

// IdentityBaseline retorna a baseline padrão (pré-calibração): posição zero e
// quaternião identidade para todas as articulações. Calibrar é opcional —
// com esta baseline, Apply devolve a amostra crua inalterada.
func IdentityBaseline() CalibrationBaseline {
	var b CalibrationBaseline
	for i := 0; i < NumJoints; i++ {
		b.Left[i] = UnsetSample(HandLeft, i)
		b.Right[i] = UnsetSample(HandRight, i)
	}
	return b
}

// ForHand retorna o snapshot da baseline para a mão indicada
func (b *CalibrationBaseline) ForHand(hand Hand) HandSnapshot {
	if hand == HandLeft {
		return b.Left
	}
	return b.Right
}

// PalmPoint é um ponto da trajetória da palma armazenado no histórico
type PalmPoint struct {
	Hand      string        `json:"hand"`
	Position  utils.Vector3 `json:"position"`
	Timestamp time.Time     `json:"timestamp"`
}

// TrackerStatus representa o estado atual do rastreador de luvas
type TrackerStatus struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	PacketsLeft  int64     `json:"packetsLeft"`
	PacketsRight int64     `json:"packetsRight"`
	DecodeErrors int64     `json:"decodeErrors"`
	DeviceLeft   string    `json:"deviceLeft,omitempty"`
	DeviceRight  string    `json:"deviceRight,omitempty"`
	Recording    bool      `json:"recording"`
	Playing      bool      `json:"playing"`
	LastError    string    `json:"lastError,omitempty"`
}
