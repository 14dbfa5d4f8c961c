package world

import (
	"github.com/l1jgo/horde/internal/core/ecs"
	"github.com/l1jgo/horde/internal/vmath"
)

// SpawnRequest asks a shooter to fire one projectile. Produced by gameplay
// input, power-ups and split resolution; consumed by ShooterSystem.
type SpawnRequest struct {
	Position          vmath.Vec3
	Direction         vmath.Vec3
	Speed             float64
	Range             float64
	Lifetime          float64
	Damage            float64
	ScaleMultiplier   float64
	InheritShooterVel bool
	IsSplitChild      bool
}

// ExplosionRequest damages enemies around a point. With AffectAll false only
// the nearest enemy inside the radius is hit.
type ExplosionRequest struct {
	Position  vmath.Vec3
	Radius    float64
	Damage    float64
	AffectAll bool
	Source    string
}

// VfxRequest spawns a transient effect. When HasFollow is set the effect
// tracks the enemy behind Follow only while that enemy's spawn version still
// matches the one captured in the handle.
type VfxRequest struct {
	Prefab    string
	Position  vmath.Vec3
	Scale     float64
	Lifetime  float64
	Follow    ecs.Handle
	HasFollow bool
}
