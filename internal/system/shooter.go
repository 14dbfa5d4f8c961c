package system

import (
	"time"

	"github.com/l1jgo/horde/internal/core/event"
	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
	"go.uber.org/zap"
)

// ShooterSystem drains each shooter's spawn requests and fires pooled
// projectiles. Phase 1 (Spawn).
type ShooterSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewShooterSystem(ws *world.State, log *zap.Logger) *ShooterSystem {
	return &ShooterSystem{world: ws, log: log}
}

func (s *ShooterSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *ShooterSystem) Update(_ time.Duration) {
	for i, sh := range s.world.Shooters {
		if sh == nil {
			continue
		}
		s.drain(int32(i), sh)
	}
}

func (s *ShooterSystem) drain(owner int32, sh *world.Shooter) {
	instantiate := func() (uint32, bool) { return s.world.InstantiateProjectile(owner) }

	if !sh.Initialized {
		if n := sh.Config.InitialPoolCapacity - sh.Pool.Total(); n > 0 {
			sh.Pool.Expand(n, instantiate)
		}
		sh.Initialized = true
	}
	if sh.Config.FollowPlayer && s.world.Player != nil {
		sh.Position = s.world.Player.Position
	}

	requested := sh.Requests.Len()
	if requested == 0 {
		return
	}
	if missing := requested - sh.Pool.Free(); missing > 0 {
		sh.Pool.Expand(max(sh.Config.ExpandBatch, missing), instantiate)
		if free := sh.Pool.Free(); free < requested {
			s.log.Debug("shooter pool exhausted",
				zap.String("shooter", sh.ID),
				zap.Int("requested", requested),
				zap.Int("available", free),
			)
			event.Emit(s.world.Bus, event.PoolExhausted{
				Owner:     sh.ID,
				Requested: requested,
				Available: free,
				Frame:     s.world.Clock.Frame,
			})
		}
	}

	sh.Requests.Drain(func(req world.SpawnRequest) {
		idx, ok := sh.Pool.Checkout()
		if !ok {
			return
		}
		s.fire(sh, idx, req)
	})
}

func (s *ShooterSystem) fire(sh *world.Shooter, idx uint32, req world.SpawnRequest) {
	p := s.world.ActivateProjectile(idx)
	if p == nil {
		return
	}
	prefab := sh.Prefab

	dir := req.Direction.Normalized()
	if dir == (vmath.Vec3{}) {
		dir = sh.Forward.Normalized()
		if dir == (vmath.Vec3{}) {
			dir = vmath.Vec3{Z: 1}
		}
	}
	speed := orDefault(req.Speed, prefab.Speed)
	mult := orDefault(req.ScaleMultiplier, 1)

	p.Position = req.Position
	p.Forward = dir
	p.Velocity = dir.Scale(speed)
	if req.InheritShooterVel {
		p.Velocity = p.Velocity.Add(sh.Velocity)
	}
	p.Damage = orDefault(req.Damage, prefab.Damage)
	p.Range = orDefault(req.Range, prefab.Range)
	p.Lifetime = orDefault(req.Lifetime, prefab.Lifetime)
	p.Scale = p.BaseScale * mult
	p.IsSplitChild = req.IsSplitChild

	p.Split = nil
	if !req.IsSplitChild && prefab.Split != nil && prefab.Split.Count > 0 {
		p.Split = prefab.Split
	}
	p.Elemental, p.HasElemental = prefab.ElementalPayload()

	if o := prefab.Orbit; o != nil && o.Radius > 0 {
		angle := vmath.Yaw(dir)
		p.Orbiting = true
		p.Orbit = world.OrbitState{
			Radius:       o.Radius,
			AngularSpeed: o.AngularSpeed,
			Angle:        angle,
		}
		p.Position = sh.Position.Add(vmath.FromYaw(angle).Scale(o.Radius))
		p.Position.Y = req.Position.Y
		p.Velocity = vmath.Vec3{}
	}
}

// orDefault returns v when positive, otherwise fallback.
func orDefault(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
