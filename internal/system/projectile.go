package system

import (
	"math"
	"time"

	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
)

// ProjectileSystem advances projectiles and tags the ones whose flight is
// over: range or lifetime exhausted, orbit completed, or swept into a wall.
// Phase 2 (Simulate).
type ProjectileSystem struct {
	world *world.State
	walls world.SweepQuery
}

// NewProjectileSystem builds the system. A nil walls query means an open arena.
func NewProjectileSystem(ws *world.State, walls world.SweepQuery) *ProjectileSystem {
	if walls == nil {
		walls = world.NoWalls{}
	}
	return &ProjectileSystem{world: ws, walls: walls}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseSimulate }

func (s *ProjectileSystem) Update(dt time.Duration) {
	step := dt.Seconds()
	s.world.Projectiles.Each(func(_ uint32, p *world.Projectile) {
		if !p.Live() {
			return
		}
		p.Age += step
		if p.Orbiting {
			s.orbit(p, step)
		} else {
			s.travel(p, step)
		}
		if !p.Tagged() && p.Exhausted() {
			p.Tag(world.DespawnExpired)
		}
	})
}

func (s *ProjectileSystem) travel(p *world.Projectile, step float64) {
	from := p.Position
	delta := p.Velocity.Scale(step)
	to := from.Add(delta)
	if s.walls.Sweep(from, to, p.Radius) {
		p.Tag(world.DespawnWall)
		return
	}
	p.Position = to
	p.Traveled += delta.Len()
}

func (s *ProjectileSystem) orbit(p *world.Projectile, step float64) {
	sh := s.world.Shooter(p.Owner)
	if sh == nil {
		p.Tag(world.DespawnExpired)
		return
	}
	from := p.Position
	turn := p.Orbit.AngularSpeed * step
	p.Orbit.Angle += turn
	p.Orbit.Swept += math.Abs(turn)

	to := sh.Position.Add(vmath.FromYaw(p.Orbit.Angle).Scale(p.Orbit.Radius))
	to.Y = from.Y
	if step > 0 {
		p.Velocity = to.Sub(from).Scale(1 / step)
	}
	p.Traveled += to.Sub(from).Len()
	p.Position = to
	if p.OrbitComplete() {
		p.Tag(world.DespawnOrbitComplete)
	}
}
