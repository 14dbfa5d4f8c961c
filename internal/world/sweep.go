package world

import "github.com/l1jgo/horde/internal/vmath"

//go:generate go tool mockgen -destination=./mocks/sweep_mock.go -package=mocks . SweepQuery

// SweepQuery tests a moving sphere against level geometry. Raycasting
// itself lives outside this module.
type SweepQuery interface {
	// Sweep reports whether a sphere of the given radius hits geometry while
	// moving from one point to another.
	Sweep(from, to vmath.Vec3, radius float64) bool
}

// NoWalls is a SweepQuery for open arenas.
type NoWalls struct{}

func (NoWalls) Sweep(vmath.Vec3, vmath.Vec3, float64) bool { return false }
