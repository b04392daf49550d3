package models

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quaternion is an orientation as reported by a pose source, scalar part last.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Number returns q in gonum's representation.
func (q Quaternion) Number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

// QuaternionFromNumber is the inverse of Number.
func QuaternionFromNumber(n quat.Number) Quaternion {
	return Quaternion{X: n.Imag, Y: n.Jmag, Z: n.Kmag, W: n.Real}
}

// QuaternionFromYaw returns the rotation of th radians about the vertical axis.
func QuaternionFromYaw(th float64) Quaternion {
	return Quaternion{Z: math.Sin(th / 2), W: math.Cos(th / 2)}
}

// Normalize scales q to unit norm. A zero quaternion yields NaN components.
func Normalize(q Quaternion) Quaternion {
	n := q.Number()
	return QuaternionFromNumber(quat.Scale(1/quat.Abs(n), n))
}

// EulerAngles holds a roll/pitch/yaw decomposition in radians.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// EulerFromQuaternion returns the yaw of q in radians, in (-π, π].
// Roll and pitch are not computed here; see Euler for the full set.
func EulerFromQuaternion(q Quaternion) float64 {
	return Yaw(q)
}

// Euler returns the full decomposition of q. No gimbal-lock handling.
func Euler(q Quaternion) EulerAngles {
	return EulerAngles{Roll: Roll(q), Pitch: Pitch(q), Yaw: Yaw(q)}
}

// Yaw is the rotation about the vertical axis.
func Yaw(q Quaternion) float64 {
	n := Normalize(q)
	x, y, z, w := n.X, n.Y, n.Z, n.W
	return math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
}

// Roll is the rotation about the forward axis.
func Roll(q Quaternion) float64 {
	n := Normalize(q)
	x, y, z, w := n.X, n.Y, n.Z, n.W
	return math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
}

// Pitch is the rotation about the lateral axis.
func Pitch(q Quaternion) float64 {
	n := Normalize(q)
	x, y, z, w := n.X, n.Y, n.Z, n.W
	s := math.Sqrt(1 + 2*(w*y-x*z))
	c := math.Sqrt(1 - 2*(w*y-x*z))
	return 2*math.Atan2(s, c) - math.Pi/2
}

// ConvertToDegrees converts radians to degrees.
func ConvertToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
