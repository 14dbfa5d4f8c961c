package world

import (
	"github.com/l1jgo/horde/internal/core/ecs"
	"github.com/l1jgo/horde/internal/vmath"
)

// DespawnReason tags an actor for return to its pool. Tags are set by any
// system during the frame and consumed by CleanupSystem at frame end.
type DespawnReason uint8

const (
	DespawnNone DespawnReason = iota
	DespawnKilled
	DespawnDistance
	DespawnExpired       // projectile range or lifetime exhausted
	DespawnOrbitComplete // orbiting projectile finished a revolution
	DespawnWall          // projectile swept into level geometry
)

var despawnNames = [...]string{"none", "killed", "distance", "expired", "orbit_complete", "wall"}

func (r DespawnReason) String() string {
	if int(r) < len(despawnNames) {
		return despawnNames[r]
	}
	return "unknown"
}

// NoOwner marks an actor without a resolvable pool owner.
const NoOwner int32 = -1

// Actor is the state shared by every pooled enemy and projectile.
type Actor struct {
	Position vmath.Vec3
	Velocity vmath.Vec3
	Owner    int32 // spawner or shooter index; NoOwner when unresolvable
	Active   bool
	Version  uint32 // spawn version, bumped on every activation
	Despawn  DespawnReason
}

// Tag requests a despawn. The first reason in a frame wins; later tags are
// ignored. Returns true when this call set the tag.
func (a *Actor) Tag(r DespawnReason) bool {
	if a.Despawn != DespawnNone || r == DespawnNone {
		return false
	}
	a.Despawn = r
	return true
}

// Tagged reports whether a despawn is pending.
func (a *Actor) Tagged() bool { return a.Despawn != DespawnNone }

// Live reports an active actor with no despawn pending.
func (a *Actor) Live() bool { return a.Active && a.Despawn == DespawnNone }

// park deactivates the actor and moves it to the out-of-world sentinel.
func (a *Actor) park() {
	a.Active = false
	a.Position = vmath.Parked
	a.Velocity = vmath.Vec3{}
	a.Despawn = DespawnNone
}

// activate bumps the spawn version and marks the actor live.
func (a *Actor) activate() {
	a.Version = ecs.NextVersion(a.Version)
	a.Despawn = DespawnNone
	a.Active = true
}
