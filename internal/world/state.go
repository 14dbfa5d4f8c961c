package world

import (
	"github.com/l1jgo/horde/internal/core/ecs"
	"github.com/l1jgo/horde/internal/core/event"
	"github.com/l1jgo/horde/internal/vmath"
)

// Player is the chase and distance-despawn target.
type Player struct {
	Position  vmath.Vec3
	Health    float64
	MaxHealth float64
}

// Clock is the frame clock, advanced once per frame before any system runs.
type Clock struct {
	Elapsed float64 // seconds since simulation start
	Frame   uint64
}

// State holds every pooled record and owner of the simulation.
// Accessed only from the frame loop goroutine; collision workers read it
// concurrently during the query phase and never write.
type State struct {
	Enemies     *ecs.SlotStore[Enemy]
	Projectiles *ecs.SlotStore[Projectile]
	Spawners    []*Spawner
	Shooters    []*Shooter
	Player      *Player // nil when no player is present

	Clock   Clock
	Kills   uint64
	Spawned uint64
	Fired   uint64

	Explosions  *event.Queue[ExplosionRequest]
	VfxRequests *event.Queue[VfxRequest]
	Effects     []Vfx

	Bus  *event.Bus
	Grid *Grid

	// ProjectileRadius applies to prefabs that leave radius unset. Collision
	// only guarantees hits within one cell (the largest enemy body radius) of
	// the projectile; see system.CollisionOptions.
	ProjectileRadius float64

	timeScale float64
}

func NewState(enemyCapacity, projectileCapacity int) *State {
	return &State{
		Enemies:          ecs.NewSlotStore[Enemy](enemyCapacity),
		Projectiles:      ecs.NewSlotStore[Projectile](projectileCapacity),
		Explosions:       event.NewQueue[ExplosionRequest](16),
		VfxRequests:      event.NewQueue[VfxRequest](64),
		Bus:              event.NewBus(),
		Grid:             NewGrid(),
		ProjectileRadius: 0.2,
		timeScale:        1,
	}
}

// TimeScale is the global enemy time multiplier in [0,1].
func (s *State) TimeScale() float64 { return s.timeScale }

func (s *State) SetTimeScale(v float64) {
	s.timeScale = vmath.Clamp01(v)
}

// AddSpawner registers a spawner and returns its owner index.
func (s *State) AddSpawner(sp *Spawner) int32 {
	s.Spawners = append(s.Spawners, sp)
	return int32(len(s.Spawners) - 1)
}

// Spawner resolves an owner index; nil when it does not name a spawner.
func (s *State) Spawner(owner int32) *Spawner {
	if owner < 0 || int(owner) >= len(s.Spawners) {
		return nil
	}
	return s.Spawners[owner]
}

// AddShooter registers a shooter and returns its owner index.
func (s *State) AddShooter(sh *Shooter) int32 {
	s.Shooters = append(s.Shooters, sh)
	return int32(len(s.Shooters) - 1)
}

// Shooter resolves an owner index; nil when it does not name a shooter.
func (s *State) Shooter(owner int32) *Shooter {
	if owner < 0 || int(owner) >= len(s.Shooters) {
		return nil
	}
	return s.Shooters[owner]
}

// InstantiateEnemy creates one parked enemy record for a spawner. It fails
// when the spawner or its prefab is missing.
func (s *State) InstantiateEnemy(owner int32) (uint32, bool) {
	sp := s.Spawner(owner)
	if sp == nil || sp.Prefab == nil {
		return 0, false
	}
	return s.Enemies.Add(newEnemy(owner, sp.Prefab)), true
}

// InstantiateProjectile creates one parked projectile record for a shooter.
func (s *State) InstantiateProjectile(owner int32) (uint32, bool) {
	sh := s.Shooter(owner)
	if sh == nil || sh.Prefab == nil {
		return 0, false
	}
	return s.Projectiles.Add(newProjectile(owner, sh.Prefab, s.ProjectileRadius)), true
}

// ActivateEnemy resets a checked-out enemy, places it and marks it live.
func (s *State) ActivateEnemy(idx uint32, pos vmath.Vec3) *Enemy {
	e := s.Enemies.Get(idx)
	if e == nil {
		return nil
	}
	e.resetRuntime()
	e.Position = pos
	e.activate()
	if sp := s.Spawner(e.Owner); sp != nil {
		sp.State.AliveCount++
	}
	s.Spawned++
	return e
}

// ActivateProjectile resets a checked-out projectile and marks it live.
// The caller sets position, velocity and flight limits.
func (s *State) ActivateProjectile(idx uint32) *Projectile {
	p := s.Projectiles.Get(idx)
	if p == nil {
		return nil
	}
	p.resetRuntime()
	p.activate()
	if sh := s.Shooter(p.Owner); sh != nil {
		sh.AliveCount++
	}
	s.Fired++
	return p
}

// ReleaseEnemy finalizes a despawn: runtime state is reset, the record is
// parked and its slot goes back to the owner's pool. Inactive records are
// left alone, so a double release cannot corrupt the free list.
func (s *State) ReleaseEnemy(idx uint32) bool {
	e := s.Enemies.Get(idx)
	if e == nil || !e.Active {
		return false
	}
	e.resetRuntime()
	e.park()
	if sp := s.Spawner(e.Owner); sp != nil {
		sp.Pool.Return(idx)
		if sp.State.AliveCount > 0 {
			sp.State.AliveCount--
		}
	}
	return true
}

// ReleaseProjectile returns a projectile to its shooter's pool.
func (s *State) ReleaseProjectile(idx uint32) bool {
	p := s.Projectiles.Get(idx)
	if p == nil || !p.Active {
		return false
	}
	p.resetRuntime()
	p.park()
	if sh := s.Shooter(p.Owner); sh != nil {
		sh.Pool.Return(idx)
		if sh.AliveCount > 0 {
			sh.AliveCount--
		}
	}
	return true
}

// EnemyHandle captures an enemy slot together with its current spawn version.
func (s *State) EnemyHandle(idx uint32) ecs.Handle {
	e := s.Enemies.Get(idx)
	if e == nil {
		return 0
	}
	return ecs.NewHandle(idx, e.Version)
}

// ResolveEnemy returns the enemy behind h only while it is active and has not
// been respawned since h was captured.
func (s *State) ResolveEnemy(h ecs.Handle) *Enemy {
	if h.IsZero() {
		return nil
	}
	e := s.Enemies.Get(h.Index())
	if e == nil || !e.Active || e.Version != h.Version() {
		return nil
	}
	return e
}

// DamageEnemy subtracts health from a live enemy and tags it Killed when
// health reaches zero. Returns true only for the hit that killed it.
func (s *State) DamageEnemy(idx uint32, amount float64) bool {
	e := s.Enemies.Get(idx)
	if e == nil || !e.Live() || amount <= 0 {
		return false
	}
	e.Health -= amount
	if e.Health > 0 {
		return false
	}
	e.Health = 0
	return e.Tag(DespawnKilled)
}

// SpawnVfx turns a request into a live effect record.
func (s *State) SpawnVfx(req VfxRequest) {
	s.Effects = append(s.Effects, newVfx(req))
}

// ActiveEnemies counts live enemy records.
func (s *State) ActiveEnemies() int {
	n := 0
	s.Enemies.Each(func(_ uint32, e *Enemy) {
		if e.Active {
			n++
		}
	})
	return n
}

// ActiveProjectiles counts live projectile records.
func (s *State) ActiveProjectiles() int {
	n := 0
	s.Projectiles.Each(func(_ uint32, p *Projectile) {
		if p.Active {
			n++
		}
	})
	return n
}
