// Package vmath holds the small numeric and planar-geometry helpers shared by
// the simulation systems. Gameplay distance is planar: only X and Z count.
package vmath

import "math"

// Floors applied to configured values at the point of use. Degenerate
// configuration is clamped, never rejected.
const (
	MinRadius   = 0.01
	MinInterval = 0.01
	MinCellSize = 0.25
	MinDuration = 0.0001
	Epsilon     = 1e-6
)

// ParkedY is the out-of-world height used for inactive pooled actors.
const ParkedY = -10000.0

// Parked is the sentinel position every inactive actor sits at.
var Parked = Vec3{X: 0, Y: ParkedY, Z: 0}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// AtLeast returns v, or floor when v is below it (or NaN).
func AtLeast(v, floor float64) float64 {
	if v < floor || math.IsNaN(v) {
		return floor
	}
	return v
}

// CellCoord maps a world coordinate to its integer cell. Uses floor so
// negative coordinates land in the correct cell.
func CellCoord(v, cellSize float64) int32 {
	return int32(math.Floor(v / cellSize))
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
