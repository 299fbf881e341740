package utils

import (
	"math"
)

// Vector3 representa uma posição no espaço 3D
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sub subtrai outro vetor deste vetor
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Add soma outro vetor a este vetor
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Norm retorna o comprimento do vetor
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsFinite verifica se todas as componentes são números válidos (sem NaN/Inf)
func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Quaternion representa uma orientação como quaternião unitário (w, x, y, z)
type Quaternion struct {
	W float64 `json:"qw"`
	X float64 `json:"qx"`
	Y float64 `json:"qy"`
	Z float64 `json:"qz"`
}

// IdentityQuaternion retorna o quaternião identidade (sem rotação)
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// Mul compõe este quaternião com outro (q ⊗ o, produto de Hamilton)
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Conjugate retorna o conjugado do quaternião
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Norm retorna a magnitude do quaternião
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Inverse retorna o inverso do quaternião. Para quaterniões unitários
// equivale ao conjugado; a divisão pela norma protege contra entradas
// ligeiramente desnormalizadas vindas da rede.
func (q Quaternion) Inverse() Quaternion {
	n := q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
	if n == 0 {
		return IdentityQuaternion()
	}
	c := q.Conjugate()
	return Quaternion{W: c.W / n, X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// Normalize retorna o quaternião normalizado para comprimento unitário
func (q Quaternion) Normalize() Quaternion {
	n := q.Norm()
	if n == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// IsFinite verifica se todas as componentes são números válidos (sem NaN/Inf)
func (q Quaternion) IsFinite() bool {
	return isFinite(q.W) && isFinite(q.X) && isFinite(q.Y) && isFinite(q.Z)
}

// isFinite verifica se um float64 é um número utilizável
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsFiniteFloat verifica se um float64 é um número utilizável
func IsFiniteFloat(f float64) bool {
	return isFinite(f)
}
