package system

import (
	"time"

	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/world"
)

// ElementalSystem ticks every enemy's stack ledger: decay, damage over time
// and impediment timers. DOT damage that empties health tags the enemy
// Killed; the aggregated slow is stored for movement. Phase 4 (Status).
type ElementalSystem struct {
	world *world.State
}

func NewElementalSystem(ws *world.State) *ElementalSystem {
	return &ElementalSystem{world: ws}
}

func (s *ElementalSystem) Phase() coresys.Phase { return coresys.PhaseStatus }

func (s *ElementalSystem) Update(dt time.Duration) {
	step := dt.Seconds()
	scale := s.world.TimeScale()
	s.world.Enemies.Each(func(idx uint32, e *world.Enemy) {
		if !e.Live() {
			return
		}
		if e.Elements.Len() == 0 {
			e.Slow = 0
			return
		}
		res := e.Elements.Tick(step, scale)
		e.Slow = res.Slow
		if res.Damage > 0 {
			s.world.DamageEnemy(idx, res.Damage)
		}
	})
}
