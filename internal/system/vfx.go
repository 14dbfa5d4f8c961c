package system

import (
	"time"

	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/world"
)

// VfxSystem spawns requested effects, moves following effects with their
// targets and drops expired ones. A follow target that was released or
// respawned since the request no longer matches its captured version; the
// effect is orphaned where it stands. Every effect is visible for at least
// the frame it spawns in. Phase 8 (Present).
type VfxSystem struct {
	world *world.State
}

func NewVfxSystem(ws *world.State) *VfxSystem {
	return &VfxSystem{world: ws}
}

func (s *VfxSystem) Phase() coresys.Phase { return coresys.PhasePresent }

func (s *VfxSystem) Update(dt time.Duration) {
	spawned := len(s.world.Effects)
	s.world.VfxRequests.Drain(s.world.SpawnVfx)

	step := dt.Seconds()
	live := s.world.Effects[:0]
	for i, v := range s.world.Effects {
		if v.Following {
			if e := s.world.ResolveEnemy(v.Follow); e != nil {
				v.Position = e.Position
			} else {
				v.Following = false
			}
		}
		// effects spawned this frame start aging next frame
		if i >= spawned {
			live = append(live, v)
			continue
		}
		v.Age += step
		if !v.Expired() {
			live = append(live, v)
		}
	}
	clear(s.world.Effects[len(live):])
	s.world.Effects = live
}
