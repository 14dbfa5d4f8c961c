package system

import (
	"time"

	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/world"
)

// CleanupSystem finalizes despawn tags at frame end: every tagged actor is
// reset, parked and returned to its owner's pool. Phase 7 (Finalize).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseFinalize }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.Enemies.Each(func(idx uint32, e *world.Enemy) {
		if e.Active && e.Tagged() {
			s.world.ReleaseEnemy(idx)
		}
	})
	s.world.Projectiles.Each(func(idx uint32, p *world.Projectile) {
		if p.Active && p.Tagged() {
			s.world.ReleaseProjectile(idx)
		}
	})
}
