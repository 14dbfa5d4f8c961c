package system

import (
	"math"
	"time"

	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
	"go.uber.org/zap"
)

// ExplosionSystem drains explosion requests and damages enemies around each
// blast point. It reads the spatial hash built by CollisionSystem earlier in
// the same phase. Phase 3 (Collide).
type ExplosionSystem struct {
	world    *world.State
	modifier DamageModifier
	log      *zap.Logger
	targets  []uint32
}

func NewExplosionSystem(ws *world.State, log *zap.Logger) *ExplosionSystem {
	return &ExplosionSystem{world: ws, log: log}
}

// SetDamageModifier installs an optional damage hook; nil removes it.
func (s *ExplosionSystem) SetDamageModifier(m DamageModifier) { s.modifier = m }

func (s *ExplosionSystem) Phase() coresys.Phase { return coresys.PhaseCollide }

func (s *ExplosionSystem) Update(_ time.Duration) {
	s.world.Explosions.Drain(s.explode)
}

func (s *ExplosionSystem) explode(req world.ExplosionRequest) {
	radius := vmath.AtLeast(req.Radius, vmath.MinRadius)
	grid := s.world.Grid

	s.targets = s.targets[:0]
	nearest, nearestDist := uint32(0), math.Inf(1)
	grid.ForEachInRange(req.Position, radius+grid.CellSize(), func(idx uint32) {
		e := s.world.Enemies.Get(idx)
		if e == nil || !e.Live() {
			return
		}
		reach := radius + e.BodyRadius
		d := vmath.PlanarDistSq(req.Position, e.Position)
		if d > reach*reach {
			return
		}
		s.targets = append(s.targets, idx)
		if d < nearestDist || (d == nearestDist && idx < nearest) {
			nearest, nearestDist = idx, d
		}
	})
	if len(s.targets) == 0 {
		return
	}
	if !req.AffectAll {
		s.targets = append(s.targets[:0], nearest)
	}

	for _, idx := range s.targets {
		e := s.world.Enemies.Get(idx)
		damage := req.Damage
		if s.modifier != nil {
			damage = sanitizeDamage(s.log, s.modifier.ExplosionDamage(ExplosionHit{
				Source:      req.Source,
				Enemy:       e.PrefabID,
				Damage:      damage,
				Distance:    math.Sqrt(vmath.PlanarDistSq(req.Position, e.Position)),
				Radius:      radius,
				EnemyHealth: e.Health,
			}), req.Damage)
		}
		s.world.DamageEnemy(idx, damage)
	}
}
