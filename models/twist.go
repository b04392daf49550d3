package models

import (
	"github.com/golang/geo/r3"
)

// Twist is a velocity command in the robot frame (x forward, y left, z up).
type Twist struct {
	Linear  r3.Vector `json:"linear"`  // m/s
	Angular r3.Vector `json:"angular"` // rad/s
}

// PlanarTwist builds a twist from forward speed and yaw rate.
func PlanarTwist(v, w float64) Twist {
	return Twist{Linear: r3.Vector{X: v}, Angular: r3.Vector{Z: w}}
}

// IsZero reports whether the twist commands no motion.
func (t Twist) IsZero() bool {
	return t.Linear == (r3.Vector{}) && t.Angular == (r3.Vector{})
}
