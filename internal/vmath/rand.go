package vmath

import "math"

// Rand is a xorshift32 (13, 17, 5) sequence. The state is a plain value so a
// spawner can persist it between frames and replay the same sequence for the
// same seed.
type Rand struct {
	state uint32
}

// NewRand seeds a sequence. A zero seed would stay zero forever, so it is
// forced to 1.
func NewRand(seed uint32) Rand {
	return Rand{state: SanitizeSeed(seed)}
}

// SanitizeSeed maps the invalid zero state to 1.
func SanitizeSeed(seed uint32) uint32 {
	if seed == 0 {
		return 1
	}
	return seed
}

// State returns the current state for persistence. Never zero.
func (r *Rand) State() uint32 {
	r.state = SanitizeSeed(r.state)
	return r.state
}

func (r *Rand) Next() uint32 {
	x := SanitizeSeed(r.state)
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float returns a value in [0, 1) using the top 24 bits.
func (r *Rand) Float() float64 {
	return float64(r.Next()>>8) * (1.0 / 16777216.0)
}

// Range returns a value in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float()
}

// InDisk samples an XZ offset area-uniform within radius (radius is
// sqrt-distributed, angle uniform in [0, 2π)).
func (r *Rand) InDisk(radius float64) (x, z float64) {
	angle := r.Float() * 2 * math.Pi
	dist := math.Sqrt(r.Float()) * radius
	return math.Cos(angle) * dist, math.Sin(angle) * dist
}
