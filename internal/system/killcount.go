package system

import (
	"time"

	"github.com/l1jgo/horde/internal/core/event"
	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/world"
)

// KillCounterSystem counts Killed despawns and emits one EnemyKilled event
// per kill. It runs after tagging and before finalization so it sees every
// tag exactly once. Phase 6 (Observe).
type KillCounterSystem struct {
	world *world.State
}

func NewKillCounterSystem(ws *world.State) *KillCounterSystem {
	return &KillCounterSystem{world: ws}
}

func (s *KillCounterSystem) Phase() coresys.Phase { return coresys.PhaseObserve }

func (s *KillCounterSystem) Update(_ time.Duration) {
	s.world.Enemies.Each(func(idx uint32, e *world.Enemy) {
		if !e.Active || e.Despawn != world.DespawnKilled {
			return
		}
		s.world.Kills++
		event.Emit(s.world.Bus, event.EnemyKilled{
			Enemy:   s.world.EnemyHandle(idx),
			Spawner: e.Owner,
			X:       e.Position.X,
			Z:       e.Position.Z,
			Frame:   s.world.Clock.Frame,
		})
	})
}
