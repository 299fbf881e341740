package glove

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"glove_go/internal/models"
	"glove_go/pkg/utils"
)

// Número de argumentos de um datagrama de articulação: X, Y, Z, qW, qX, qY, qZ
const jointArgCount = 7

// DecodeError indica um datagrama malformado. É sempre recuperável: o
// chamador descarta o datagrama e incrementa um contador, nunca propaga.
type DecodeError struct {
	Reason string
}

// Error implementa a interface error
func (e *DecodeError) Error() string {
	return "datagrama inválido: " + e.Reason
}

// decodeErrorf cria um DecodeError formatado
func decodeErrorf(format string, args ...interface{}) *DecodeError {
	return &DecodeError{Reason: fmt.Sprintf(format, args...)}
}

// Result é o produto da descodificação de um datagrama: uma amostra de
// articulação ou um anúncio de nome de dispositivo (nunca ambos).
type Result struct {
	Sample *models.JointSample
	Device *DeviceAnnounce
}

// DeviceAnnounce carrega o rótulo de dispositivo transmitido pela luva
type DeviceAnnounce struct {
	Hand models.Hand
	Name string
}

// Decoder descodifica datagramas OSC das luvas.
//
// Formatos reconhecidos:
//
//	/glove/<hand>/joint/<índice>  ,fffffff   → amostra de articulação
//	/glove/<hand>/device          ,s         → rótulo do dispositivo
//
// onde <hand> é left|l|right|r e <índice> está em [0, 25]. Argumentos
// numéricos aceitam as tags f (float32) e d (float64).
type Decoder struct{}

// NewDecoder cria um novo descodificador
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode descodifica um datagrama OSC completo. Qualquer desvio do formato
// esperado resulta em *DecodeError.
func (d *Decoder) Decode(datagram []byte) (Result, error) {
	address, offset, err := readOSCString(datagram, 0)
	if err != nil {
		return Result{}, decodeErrorf("endereço ilegível: %v", err)
	}
	if !strings.HasPrefix(address, "/") {
		return Result{}, decodeErrorf("endereço não começa com '/': %q", address)
	}

	tags, offset, err := readOSCString(datagram, offset)
	if err != nil {
		return Result{}, decodeErrorf("type tags ilegíveis: %v", err)
	}
	if !strings.HasPrefix(tags, ",") {
		return Result{}, decodeErrorf("type tags sem ',' inicial: %q", tags)
	}
	tags = tags[1:]

	parts := strings.Split(strings.Trim(address, "/"), "/")
	switch {
	case len(parts) == 4 && parts[0] == "glove" && parts[2] == "joint":
		return d.decodeJoint(datagram, offset, parts[1], parts[3], tags)
	case len(parts) == 3 && parts[0] == "glove" && parts[2] == "device":
		return d.decodeDevice(datagram, offset, parts[1], tags)
	default:
		return Result{}, decodeErrorf("endereço não reconhecido: %q", address)
	}
}

// decodeJoint descodifica os sete argumentos numéricos de uma articulação
func (d *Decoder) decodeJoint(datagram []byte, offset int, handToken, jointToken, tags string) (Result, error) {
	hand, err := models.ParseHand(handToken)
	if err != nil {
		return Result{}, decodeErrorf("%v", err)
	}

	joint, err := strconv.Atoi(jointToken)
	if err != nil || joint < 0 || joint >= models.NumJoints {
		return Result{}, decodeErrorf("índice de articulação inválido: %q", jointToken)
	}

	if len(tags) != jointArgCount {
		return Result{}, decodeErrorf("esperados %d argumentos, recebidos %d", jointArgCount, len(tags))
	}

	var values [jointArgCount]float64
	for i, tag := range tags {
		switch tag {
		case 'f':
			if offset+4 > len(datagram) {
				return Result{}, decodeErrorf("datagrama truncado no argumento %d", i)
			}
			values[i] = float64(utils.BytesToFloat32(datagram[offset : offset+4]))
			offset += 4
		case 'd':
			if offset+8 > len(datagram) {
				return Result{}, decodeErrorf("datagrama truncado no argumento %d", i)
			}
			values[i] = utils.BytesToFloat64(datagram[offset : offset+8])
			offset += 8
		default:
			return Result{}, decodeErrorf("argumento %d não é numérico (tag %q)", i, string(tag))
		}
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return Result{}, decodeErrorf("argumento %d não é um número válido", i)
		}
	}

	sample := &models.JointSample{
		Hand:  hand,
		Joint: joint,
		Position: utils.Vector3{
			X: values[0],
			Y: values[1],
			Z: values[2],
		},
		Orientation: utils.Quaternion{
			W: values[3],
			X: values[4],
			Y: values[5],
			Z: values[6],
		},
	}
	return Result{Sample: sample}, nil
}

// decodeDevice descodifica o anúncio de nome de dispositivo
func (d *Decoder) decodeDevice(datagram []byte, offset int, handToken, tags string) (Result, error) {
	hand, err := models.ParseHand(handToken)
	if err != nil {
		return Result{}, decodeErrorf("%v", err)
	}

	if tags != "s" {
		return Result{}, decodeErrorf("anúncio de dispositivo espera um argumento string, tags %q", tags)
	}

	name, _, err := readOSCString(datagram, offset)
	if err != nil {
		return Result{}, decodeErrorf("nome de dispositivo ilegível: %v", err)
	}

	return Result{Device: &DeviceAnnounce{Hand: hand, Name: name}}, nil
}

// readOSCString lê uma string OSC (terminada em NUL, com padding até
// múltiplo de 4 bytes) a partir de offset. Retorna a string e o offset do
// próximo campo.
func readOSCString(data []byte, offset int) (string, int, error) {
	if offset >= len(data) {
		return "", 0, fmt.Errorf("offset %d fora do datagrama (%d bytes)", offset, len(data))
	}

	end := offset
	for end < len(data) && data[end] != 0 {
		end++
	}
	if end == len(data) {
		return "", 0, fmt.Errorf("string sem terminador NUL")
	}

	s := string(data[offset:end])

	// Avançar para além do NUL e do padding de alinhamento
	next := end + 1
	if pad := (next - offset) % 4; pad != 0 {
		next += 4 - pad
	}
	if next > len(data) {
		return "", 0, fmt.Errorf("padding excede o datagrama")
	}

	return s, next, nil
}
