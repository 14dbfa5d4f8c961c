package world

import (
	"math"

	"github.com/l1jgo/horde/internal/data"
	"github.com/l1jgo/horde/internal/elemental"
	"github.com/l1jgo/horde/internal/vmath"
)

// OrbitState tracks an orbiting projectile's sweep around its shooter.
type OrbitState struct {
	Radius       float64
	AngularSpeed float64
	Angle        float64
	Swept        float64 // accumulated |angle| travelled; 2π completes the orbit
}

// Projectile is a pooled projectile record owned by one shooter.
type Projectile struct {
	Actor
	PrefabID  string
	Damage    float64
	Range     float64
	Lifetime  float64
	Traveled  float64
	Age       float64
	Radius    float64
	BaseScale float64 // cached at instantiation; multipliers apply to this
	Scale     float64
	Forward   vmath.Vec3

	Split        *data.SplitSpec
	IsSplitChild bool

	Elemental    elemental.Payload
	HasElemental bool

	Orbit    OrbitState
	Orbiting bool
}

func newProjectile(owner int32, p *data.ProjectilePrefab, defaultRadius float64) Projectile {
	radius := p.Radius
	if radius <= 0 {
		radius = defaultRadius
	}
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	return Projectile{
		Actor:     Actor{Owner: owner, Position: vmath.Parked},
		PrefabID:  p.ID,
		Radius:    vmath.AtLeast(radius, vmath.MinRadius),
		BaseScale: scale,
		Scale:     scale,
		Forward:   vmath.Vec3{Z: 1},
	}
}

// resetRuntime clears per-flight state; BaseScale survives.
func (p *Projectile) resetRuntime() {
	p.Velocity = vmath.Vec3{}
	p.Traveled = 0
	p.Age = 0
	p.Scale = p.BaseScale
	p.IsSplitChild = false
	p.Orbit = OrbitState{}
	p.Orbiting = false
}

// Exhausted reports range or lifetime exhaustion. A zero range or lifetime
// disables that limit.
func (p *Projectile) Exhausted() bool {
	if p.Range > 0 && p.Traveled >= p.Range {
		return true
	}
	if p.Lifetime > 0 && p.Age >= p.Lifetime {
		return true
	}
	return false
}

// OrbitComplete reports a finished revolution.
func (p *Projectile) OrbitComplete() bool {
	return p.Orbiting && p.Orbit.Swept >= 2*math.Pi
}

// TravelDir is the planar direction of travel, falling back to Forward when
// the projectile has no usable velocity.
func (p *Projectile) TravelDir() vmath.Vec3 {
	if dir, ok := p.Velocity.PlanarDir(); ok {
		return dir
	}
	if dir, ok := p.Forward.PlanarDir(); ok {
		return dir
	}
	return vmath.Vec3{Z: 1}
}
