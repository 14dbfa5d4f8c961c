package system

import (
	"math"
	"time"

	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
)

// MovementSystem steers enemies toward the player, pushes crowded enemies
// apart and applies contact damage. Enemy time runs at the global time scale
// and each enemy's elemental slow reduces its speed. Phase 2 (Simulate).
type MovementSystem struct {
	world   *world.State
	grid    *world.Grid
	live    []uint32
	desired []vmath.Vec3
}

func NewMovementSystem(ws *world.State) *MovementSystem {
	return &MovementSystem{world: ws, grid: world.NewGrid()}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseSimulate }

func (s *MovementSystem) Update(dt time.Duration) {
	step := dt.Seconds() * s.world.TimeScale()
	if step <= 0 {
		return
	}

	// Separation reads a snapshot of positions, so gather every live enemy
	// before any of them moves.
	s.live = s.live[:0]
	maxSep := 0.0
	s.world.Enemies.Each(func(idx uint32, e *world.Enemy) {
		if !e.Live() {
			return
		}
		s.live = append(s.live, idx)
		maxSep = math.Max(maxSep, e.SeparationRadius)
	})
	if len(s.live) == 0 {
		return
	}
	s.grid.Reset(maxSep)
	for _, idx := range s.live {
		s.grid.Insert(idx, s.world.Enemies.Get(idx).Position)
	}

	player := s.world.Player
	s.desired = s.desired[:0]
	for _, idx := range s.live {
		e := s.world.Enemies.Get(idx)
		s.desired = append(s.desired, s.steer(idx, e, player))
	}

	for i, idx := range s.live {
		e := s.world.Enemies.Get(idx)
		if e.Acceleration > 0 {
			e.Velocity = vmath.MoveTowards(e.Velocity, s.desired[i], e.Acceleration*step)
		} else {
			e.Velocity = s.desired[i]
		}
		e.Position = e.Position.Add(e.Velocity.Scale(step))

		if e.ContactTimer > 0 {
			e.ContactTimer = math.Max(e.ContactTimer-step, 0)
		}
		if player != nil {
			s.contact(e, player)
		}
	}
}

func (s *MovementSystem) steer(idx uint32, e *world.Enemy, player *world.Player) vmath.Vec3 {
	speed := e.MoveSpeed * (1 - vmath.Clamp01(e.Slow))
	var desired vmath.Vec3
	if player != nil {
		if dir, ok := player.Position.Sub(e.Position).PlanarDir(); ok {
			desired = dir.Scale(speed)
		}
	}

	var push vmath.Vec3
	r := e.SeparationRadius
	s.grid.ForEachNear(e.Position, func(other uint32) {
		if other == idx {
			return
		}
		o := s.world.Enemies.Get(other)
		d := e.Position.Sub(o.Position)
		d.Y = 0
		distSq := d.PlanarLenSq()
		if distSq >= r*r {
			return
		}
		dist := math.Sqrt(distSq)
		if dist < vmath.Epsilon {
			// Stacked exactly: push along a slot-dependent axis.
			d = vmath.FromYaw(float64(idx%16) * (math.Pi / 8))
			dist = 1
		}
		push = push.Add(d.Scale((1 - dist/r) / dist))
	})
	if e.SeparationWeight > 0 {
		desired = desired.Add(push.Scale(e.SeparationWeight * math.Max(speed, vmath.Epsilon)))
	}
	return desired
}

func (s *MovementSystem) contact(e *world.Enemy, player *world.Player) {
	if e.ContactDamage <= 0 || e.ContactTimer > 0 {
		return
	}
	if vmath.PlanarDistSq(e.Position, player.Position) > e.ContactRadius*e.ContactRadius {
		return
	}
	player.Health = math.Max(player.Health-e.ContactDamage, 0)
	e.ContactTimer = e.ContactCooldown
}
