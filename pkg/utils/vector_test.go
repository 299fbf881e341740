package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3Sub(t *testing.T) {
	a := Vector3{X: 1.0, Y: 2.0, Z: 3.0}
	b := Vector3{X: 0.5, Y: 1.0, Z: -1.0}

	result := a.Sub(b)

	assert.InDelta(t, 0.5, result.X, 1e-9)
	assert.InDelta(t, 1.0, result.Y, 1e-9)
	assert.InDelta(t, 4.0, result.Z, 1e-9)
}

func TestQuaternionIdentity(t *testing.T) {
	q := IdentityQuaternion()

	assert.Equal(t, 1.0, q.W)
	assert.Equal(t, 0.0, q.X)
	assert.Equal(t, 0.0, q.Y)
	assert.Equal(t, 0.0, q.Z)
	assert.InDelta(t, 1.0, q.Norm(), 1e-9)
}

func TestQuaternionMulIdentity(t *testing.T) {
	// Multiplicar pela identidade não altera o quaternião
	q := Quaternion{W: 0.5, X: 0.5, Y: 0.5, Z: 0.5}
	identity := IdentityQuaternion()

	result := q.Mul(identity)

	assert.InDelta(t, q.W, result.W, 1e-9)
	assert.InDelta(t, q.X, result.X, 1e-9)
	assert.InDelta(t, q.Y, result.Y, 1e-9)
	assert.InDelta(t, q.Z, result.Z, 1e-9)
}

func TestQuaternionMulInverse(t *testing.T) {
	// q ⊗ q⁻¹ deve resultar na identidade
	q := Quaternion{W: 0.7071, X: 0.7071, Y: 0.0, Z: 0.0}

	result := q.Mul(q.Inverse()).Normalize()

	assert.InDelta(t, 1.0, result.W, 1e-6)
	assert.InDelta(t, 0.0, result.X, 1e-6)
	assert.InDelta(t, 0.0, result.Y, 1e-6)
	assert.InDelta(t, 0.0, result.Z, 1e-6)
}

func TestQuaternionNormalize(t *testing.T) {
	q := Quaternion{W: 2.0, X: 0.0, Y: 0.0, Z: 0.0}

	result := q.Normalize()

	assert.InDelta(t, 1.0, result.Norm(), 1e-9)
	assert.InDelta(t, 1.0, result.W, 1e-9)
}

func TestQuaternionInverseZero(t *testing.T) {
	// Inverso de um quaternião nulo degrada para a identidade
	var q Quaternion

	result := q.Inverse()

	assert.Equal(t, IdentityQuaternion(), result)
}

func TestQuaternionIsFinite(t *testing.T) {
	valid := Quaternion{W: 1.0}
	invalid := Quaternion{W: math.NaN()}

	assert.True(t, valid.IsFinite())
	assert.False(t, invalid.IsFinite())
}

func TestFloat32RoundTrip(t *testing.T) {
	original := float32(3.14159)

	result := BytesToFloat32(Float32ToBytes(original))

	assert.Equal(t, original, result)
}

func TestFormatFloatFixed(t *testing.T) {
	assert.Equal(t, "0.123457", FormatFloatFixed(0.123456789, 6))
	assert.Equal(t, "-1.500000", FormatFloatFixed(-1.5, 6))
}
