package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: deliver last frame's events
	PhaseSpawn                   // 1: spawn scheduling, projectile spawn requests
	PhaseSimulate                // 2: movement, projectile travel
	PhaseCollide                 // 3: projectile/enemy resolution, explosions
	PhaseStatus                  // 4: elemental decay, DOT, impediment
	PhaseDespawnTag              // 5: distance/death tagging
	PhaseObserve                 // 6: kill counting (sees tags before finalize)
	PhaseFinalize                // 7: return tagged actors to their pools
	PhasePresent                 // 8: VFX follow/expiry
)

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
