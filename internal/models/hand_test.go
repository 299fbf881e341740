package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glove_go/pkg/utils"
)

func TestParseHand(t *testing.T) {
	cases := []struct {
		token    string
		expected Hand
	}{
		{"left", HandLeft},
		{"l", HandLeft},
		{"LEFT", HandLeft},
		{"right", HandRight},
		{"r", HandRight},
		{"Right", HandRight},
	}

	for _, tc := range cases {
		hand, err := ParseHand(tc.token)
		require.NoError(t, err, tc.token)
		assert.Equal(t, tc.expected, hand)
	}

	_, err := ParseHand("middle")
	assert.Error(t, err)

	_, err = ParseHand("")
	assert.Error(t, err)
}

func TestHandString(t *testing.T) {
	assert.Equal(t, "left", HandLeft.String())
	assert.Equal(t, "right", HandRight.String())
	assert.Equal(t, "unknown", Hand(5).String())

	assert.True(t, HandLeft.Valid())
	assert.False(t, Hand(2).Valid())
}

func TestJointNamesComplete(t *testing.T) {
	// 26 nomes na ordem OpenXR, do Palm ao Little tip
	assert.Equal(t, "Palm", JointNames[0])
	assert.Equal(t, "Wrist", JointNames[1])
	assert.Equal(t, "Thumb tip", JointNames[5])
	assert.Equal(t, "Little tip", JointNames[NumJoints-1])

	for _, name := range JointNames {
		assert.NotEmpty(t, name)
	}
}

func TestUnsetSample(t *testing.T) {
	sample := UnsetSample(HandRight, 12)

	assert.Equal(t, HandRight, sample.Hand)
	assert.Equal(t, 12, sample.Joint)
	assert.Equal(t, utils.Vector3{}, sample.Position)
	assert.Equal(t, utils.IdentityQuaternion(), sample.Orientation)
}

func TestIdentityBaseline(t *testing.T) {
	baseline := IdentityBaseline()

	for j := 0; j < NumJoints; j++ {
		assert.Equal(t, utils.IdentityQuaternion(), baseline.Left[j].Orientation)
		assert.Equal(t, utils.IdentityQuaternion(), baseline.Right[j].Orientation)
	}

	assert.Equal(t, baseline.Left, baseline.ForHand(HandLeft))
	assert.Equal(t, baseline.Right, baseline.ForHand(HandRight))
}

func TestRecordingNilSafety(t *testing.T) {
	// Uma gravação nula conta como vazia, nunca como pânico
	var rec *Recording

	assert.Equal(t, 0, rec.FrameCount())
	assert.Equal(t, time.Duration(0), rec.Duration())
	assert.Equal(t, RecordingInfo{}, rec.Info())
}

func TestRecordingDuration(t *testing.T) {
	rec := &Recording{
		Frames: []Frame{
			{Index: 0, Elapsed: 16 * time.Millisecond},
			{Index: 1, Elapsed: 33 * time.Millisecond},
		},
		SampleRate: time.Second / 60,
	}

	assert.Equal(t, 2, rec.FrameCount())
	assert.Equal(t, 33*time.Millisecond, rec.Duration())

	info := rec.Info()
	assert.Equal(t, 2, info.FrameCount)
	assert.Equal(t, 33*time.Millisecond, info.Duration)
}
