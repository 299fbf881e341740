package glove

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glove_go/internal/models"
	"glove_go/pkg/utils"
)

func TestStoreInitialState(t *testing.T) {
	store := NewStore()

	// Todas as articulações começam na pose neutra
	for h := 0; h < models.NumHands; h++ {
		snap := store.Snapshot(models.Hand(h))
		for j := 0; j < models.NumJoints; j++ {
			assert.Equal(t, utils.Vector3{}, snap[j].Position)
			assert.Equal(t, utils.IdentityQuaternion(), snap[j].Orientation)
		}
	}

	assert.Equal(t, int64(0), store.PacketCount(models.HandLeft))
	assert.Equal(t, int64(0), store.PacketCount(models.HandRight))
	assert.True(t, store.LastUpdate(models.HandLeft).IsZero())
	assert.True(t, store.LastUpdate(models.HandRight).IsZero())
}

func TestStoreUpdateReplacesSample(t *testing.T) {
	store := NewStore()

	sample := models.JointSample{
		Hand:        models.HandLeft,
		Joint:       3,
		Position:    utils.Vector3{X: 1.0, Y: 2.0, Z: 3.0},
		Orientation: utils.IdentityQuaternion(),
	}
	store.Update(sample)

	got := store.Joint(models.HandLeft, 3)
	assert.Equal(t, sample.Position, got.Position)

	// O contador da mão esquerda incrementa, o da direita não
	assert.Equal(t, int64(1), store.PacketCount(models.HandLeft))
	assert.Equal(t, int64(0), store.PacketCount(models.HandRight))
	assert.False(t, store.LastUpdate(models.HandLeft).IsZero())
}

func TestStoreLastUpdatePerHand(t *testing.T) {
	store := NewStore()

	// Pacotes da mão esquerda não atualizam o carimbo da direita
	store.Update(models.JointSample{
		Hand:        models.HandLeft,
		Joint:       0,
		Orientation: utils.IdentityQuaternion(),
	})

	assert.False(t, store.LastUpdate(models.HandLeft).IsZero())
	assert.True(t, store.LastUpdate(models.HandRight).IsZero())

	store.Update(models.JointSample{
		Hand:        models.HandRight,
		Joint:       5,
		Orientation: utils.IdentityQuaternion(),
	})

	assert.False(t, store.LastUpdate(models.HandRight).IsZero())

	// Mão inválida nunca tem carimbo
	assert.True(t, store.LastUpdate(models.Hand(7)).IsZero())
}

func TestStoreIgnoresInvalidSlots(t *testing.T) {
	store := NewStore()

	store.Update(models.JointSample{Hand: models.Hand(7), Joint: 0})
	store.Update(models.JointSample{Hand: models.HandLeft, Joint: 26})
	store.Update(models.JointSample{Hand: models.HandLeft, Joint: -1})

	assert.Equal(t, int64(0), store.PacketCount(models.HandLeft))
}

func TestStoreDeviceNames(t *testing.T) {
	store := NewStore()

	assert.Equal(t, "", store.Device(models.HandLeft))

	store.SetDevice(models.HandLeft, "Reality Glove (L)")
	store.SetDevice(models.HandRight, "Reality Glove (R)")

	assert.Equal(t, "Reality Glove (L)", store.Device(models.HandLeft))
	assert.Equal(t, "Reality Glove (R)", store.Device(models.HandRight))
}

func TestStoreDecodeErrorCounter(t *testing.T) {
	store := NewStore()

	store.RecordDecodeError()
	store.RecordDecodeError()

	assert.Equal(t, int64(2), store.DecodeErrors())
}

func TestStoreConcurrentAccess(t *testing.T) {
	// Escritores simultâneos em slots diferentes e leitores de snapshot não
	// devem corromper o estado (executar com -race)
	store := NewStore()

	const writesPerJoint = 100
	var wg sync.WaitGroup

	for h := 0; h < models.NumHands; h++ {
		for j := 0; j < models.NumJoints; j++ {
			wg.Add(1)
			go func(hand models.Hand, joint int) {
				defer wg.Done()
				for i := 0; i < writesPerJoint; i++ {
					store.Update(models.JointSample{
						Hand:        hand,
						Joint:       joint,
						Position:    utils.Vector3{X: float64(i)},
						Orientation: utils.IdentityQuaternion(),
					})
				}
			}(models.Hand(h), j)
		}
	}

	// Leitores concorrentes
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				_ = store.Snapshot(models.HandLeft)
				_ = store.Snapshot(models.HandRight)
			}
		}()
	}

	wg.Wait()

	// Cada slot recebeu exatamente writesPerJoint pacotes
	require.Equal(t, int64(models.NumJoints*writesPerJoint), store.PacketCount(models.HandLeft))
	require.Equal(t, int64(models.NumJoints*writesPerJoint), store.PacketCount(models.HandRight))

	// A última escrita de cada slot é a visível
	for j := 0; j < models.NumJoints; j++ {
		got := store.Joint(models.HandLeft, j)
		assert.Equal(t, float64(writesPerJoint-1), got.Position.X)
	}
}
