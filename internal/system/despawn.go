package system

import (
	"time"

	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
)

// DespawnSystem tags dead enemies and enemies that strayed too far from the
// player. Tags are finalized later by CleanupSystem. Phase 5 (DespawnTag).
type DespawnSystem struct {
	world *world.State
}

func NewDespawnSystem(ws *world.State) *DespawnSystem {
	return &DespawnSystem{world: ws}
}

func (s *DespawnSystem) Phase() coresys.Phase { return coresys.PhaseDespawnTag }

func (s *DespawnSystem) Update(_ time.Duration) {
	player := s.world.Player
	s.world.Enemies.Each(func(_ uint32, e *world.Enemy) {
		if !e.Live() {
			return
		}
		if e.Health <= 0 {
			e.Tag(world.DespawnKilled)
			return
		}
		sp := s.world.Spawner(e.Owner)
		if sp == nil {
			e.Tag(world.DespawnDistance)
			return
		}
		limit := sp.Config.DespawnDistance
		if player == nil || limit <= 0 {
			return
		}
		if vmath.PlanarDistSq(e.Position, player.Position) > limit*limit {
			e.Tag(world.DespawnDistance)
		}
	})
}
