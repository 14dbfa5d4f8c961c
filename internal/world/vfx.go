package world

import (
	"github.com/l1jgo/horde/internal/core/ecs"
	"github.com/l1jgo/horde/internal/vmath"
)

// Vfx is a live transient effect. A following effect copies its target's
// position each frame until the target is released or respawned, after
// which it is orphaned in place.
type Vfx struct {
	Prefab    string
	Position  vmath.Vec3
	Scale     float64
	Lifetime  float64
	Age       float64
	Follow    ecs.Handle
	Following bool
}

// Expired reports a finished effect. VfxSystem does not age an effect on
// its spawn frame, so a zero lifetime is still shown once.
func (v *Vfx) Expired() bool {
	return v.Age >= v.Lifetime
}

func newVfx(req VfxRequest) Vfx {
	scale := req.Scale
	if scale <= 0 {
		scale = 1
	}
	return Vfx{
		Prefab:    req.Prefab,
		Position:  req.Position,
		Scale:     scale,
		Lifetime:  req.Lifetime,
		Follow:    req.Follow,
		Following: req.HasFollow && !req.Follow.IsZero(),
	}
}
