// Package sim assembles the world state and the frame pipeline from config
// and presets, and advances it one frame at a time.
package sim

import (
	"errors"
	"time"

	"github.com/l1jgo/horde/internal/config"
	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/data"
	"github.com/l1jgo/horde/internal/system"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
	"go.uber.org/zap"
)

// Options are the collaborators an Engine is built from. Walls and Damage
// are optional.
type Options struct {
	Config  *config.Config
	Presets *data.Presets
	Walls   world.SweepQuery
	Damage  system.DamageModifier
	Log     *zap.Logger
}

var _ world.SweepQuery = (*data.WallMap)(nil)

// Engine owns the world state and runs every system once per Step.
// Not safe for concurrent use; drive it from one goroutine.
type Engine struct {
	State  *world.State
	runner *coresys.Runner
	log    *zap.Logger

	shooterIdx map[string]int32
}

// Stats is a read-only snapshot for hosts and UIs.
type Stats struct {
	Frame             uint64
	Elapsed           float64
	Kills             uint64
	Spawned           uint64
	Fired             uint64
	ActiveEnemies     int
	ActiveProjectiles int
	Effects           int
	PlayerHealth      float64
}

func New(opts Options) (*Engine, error) {
	if opts.Config == nil || opts.Presets == nil {
		return nil, errors.New("sim: config and presets are required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	cfg := opts.Config

	st := world.NewState(cfg.Simulation.EnemyCapacity, cfg.Simulation.ShotCapacity)
	st.ProjectileRadius = vmath.AtLeast(cfg.Collision.ProjectileRadius, vmath.MinRadius)
	st.SetTimeScale(cfg.Simulation.EnemyTimeScale)
	st.Player = &world.Player{
		Position:  vmath.Vec3{X: cfg.Player.X, Y: cfg.Player.Y, Z: cfg.Player.Z},
		Health:    cfg.Player.MaxHealth,
		MaxHealth: cfg.Player.MaxHealth,
	}

	e := &Engine{
		State:      st,
		runner:     coresys.NewRunner(),
		log:        log,
		shooterIdx: make(map[string]int32),
	}
	e.addOwners(opts.Presets, cfg.Simulation.Seed)
	e.registerSystems(cfg, opts)
	return e, nil
}

func (e *Engine) addOwners(p *data.Presets, seed uint32) {
	if p.Spawners == nil {
		return
	}
	for i, entry := range p.Spawners.Spawners {
		prefab := p.Enemies.Get(entry.EnemyID)
		if prefab == nil {
			e.log.Warn("spawner enemy prefab not found, spawner will stay empty",
				zap.String("spawner", entry.ID),
				zap.String("enemy", entry.EnemyID),
			)
		}
		e.State.AddSpawner(world.NewSpawner(entry, prefab, mixSeed(seed, i)))
	}
	for _, entry := range p.Spawners.Shooters {
		prefab := p.Projectiles.Get(entry.ProjectileID)
		if prefab == nil {
			e.log.Warn("shooter projectile prefab not found, shooter will not fire",
				zap.String("shooter", entry.ID),
				zap.String("projectile", entry.ProjectileID),
			)
		}
		e.shooterIdx[entry.ID] = e.State.AddShooter(world.NewShooter(entry, prefab))
	}
}

// mixSeed derives a per-spawner seed so spawners sharing the global seed
// still draw different sequences.
func mixSeed(seed uint32, i int) uint32 {
	return vmath.SanitizeSeed(seed ^ uint32(i+1)*2654435761)
}

func (e *Engine) registerSystems(cfg *config.Config, opts Options) {
	st := e.State

	collision := system.NewCollisionSystem(st, system.CollisionOptions{
		Workers:           cfg.Collision.Workers,
		ParallelThreshold: cfg.Collision.ParallelThreshold,
	}, e.log)
	explosion := system.NewExplosionSystem(st, e.log)
	if opts.Damage != nil {
		collision.SetDamageModifier(opts.Damage)
		explosion.SetDamageModifier(opts.Damage)
	}

	e.runner.Register(system.NewInputSystem(st.Bus))
	e.runner.Register(system.NewSpawnSystem(st, e.log))
	e.runner.Register(system.NewShooterSystem(st, e.log))
	e.runner.Register(system.NewMovementSystem(st))
	e.runner.Register(system.NewProjectileSystem(st, opts.Walls))
	e.runner.Register(collision)
	e.runner.Register(explosion)
	e.runner.Register(system.NewElementalSystem(st))
	e.runner.Register(system.NewDespawnSystem(st))
	e.runner.Register(system.NewKillCounterSystem(st))
	e.runner.Register(system.NewCleanupSystem(st))
	e.runner.Register(system.NewVfxSystem(st))
}

// Step advances the frame clock by dt and runs every system once.
func (e *Engine) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	e.State.Clock.Elapsed += dt.Seconds()
	e.State.Clock.Frame++
	e.runner.Tick(dt)
}

// Shooter looks up a shooter's owner index by ID.
func (e *Engine) Shooter(id string) (int32, bool) {
	idx, ok := e.shooterIdx[id]
	return idx, ok
}

// Fire queues a spawn request on a shooter for the next Step. Unknown
// shooters are ignored.
func (e *Engine) Fire(shooterID string, req world.SpawnRequest) bool {
	idx, ok := e.shooterIdx[shooterID]
	if !ok {
		return false
	}
	e.State.Shooter(idx).Fire(req)
	return true
}

// Explode queues an explosion for the next Step.
func (e *Engine) Explode(req world.ExplosionRequest) {
	e.State.Explosions.Push(req)
}

// SpawnVfx queues a transient effect for the next Step.
func (e *Engine) SpawnVfx(req world.VfxRequest) {
	e.State.VfxRequests.Push(req)
}

// SetTimeScale sets the global enemy time scale, clamped to [0,1].
func (e *Engine) SetTimeScale(v float64) { e.State.SetTimeScale(v) }

// MovePlayer places the player; nil removes it.
func (e *Engine) MovePlayer(pos *vmath.Vec3) {
	if pos == nil {
		e.State.Player = nil
		return
	}
	if e.State.Player == nil {
		e.State.Player = &world.Player{}
	}
	e.State.Player.Position = *pos
}

func (e *Engine) Stats() Stats {
	st := e.State
	s := Stats{
		Frame:             st.Clock.Frame,
		Elapsed:           st.Clock.Elapsed,
		Kills:             st.Kills,
		Spawned:           st.Spawned,
		Fired:             st.Fired,
		ActiveEnemies:     st.ActiveEnemies(),
		ActiveProjectiles: st.ActiveProjectiles(),
		Effects:           len(st.Effects),
	}
	if st.Player != nil {
		s.PlayerHealth = st.Player.Health
	}
	return s
}
