package world

import (
	"github.com/l1jgo/horde/internal/core/ecs"
	"github.com/l1jgo/horde/internal/core/event"
	"github.com/l1jgo/horde/internal/data"
	"github.com/l1jgo/horde/internal/vmath"
)

// SpawnerState is the mutable scheduling state of one spawner.
type SpawnerState struct {
	NextSpawnTime float64
	AliveCount    int
	RNG           uint32 // xorshift32 state, never 0
	Initialized   bool
	FirstTickDone bool
}

// Spawner owns an enemy pool and every enemy drawn from it.
type Spawner struct {
	ID     string
	Prefab *data.EnemyPrefab // nil when the prefab could not be resolved
	Config data.SpawnerEntry
	Anchor vmath.Vec3
	State  SpawnerState
	Pool   *ecs.Pool
}

// NewSpawner builds an uninitialized spawner. fallbackSeed is used when the
// entry carries no seed of its own.
func NewSpawner(cfg data.SpawnerEntry, prefab *data.EnemyPrefab, fallbackSeed uint32) *Spawner {
	seed := cfg.Seed
	if seed == 0 {
		seed = fallbackSeed
	}
	return &Spawner{
		ID:     cfg.ID,
		Prefab: prefab,
		Config: cfg,
		Anchor: vmath.Vec3{X: cfg.X, Y: cfg.Y, Z: cfg.Z},
		State: SpawnerState{
			NextSpawnTime: cfg.FirstSpawnTime,
			RNG:           vmath.SanitizeSeed(seed),
		},
		Pool: ecs.NewPool(cfg.InitialPoolCapacity),
	}
}

// Shooter owns a projectile pool and every projectile fired from it.
type Shooter struct {
	ID          string
	Prefab      *data.ProjectilePrefab // nil when the prefab could not be resolved
	Config      data.ShooterEntry
	Position    vmath.Vec3
	Velocity    vmath.Vec3
	Forward     vmath.Vec3
	AliveCount  int
	Initialized bool
	Pool        *ecs.Pool
	Requests    *event.Queue[SpawnRequest]
}

func NewShooter(cfg data.ShooterEntry, prefab *data.ProjectilePrefab) *Shooter {
	return &Shooter{
		ID:       cfg.ID,
		Prefab:   prefab,
		Config:   cfg,
		Position: vmath.Vec3{X: cfg.X, Y: cfg.Y, Z: cfg.Z},
		Forward:  vmath.Vec3{Z: 1},
		Pool:     ecs.NewPool(cfg.InitialPoolCapacity),
		Requests: event.NewQueue[SpawnRequest](64),
	}
}

// Fire queues a spawn request for this frame.
func (s *Shooter) Fire(req SpawnRequest) {
	s.Requests.Push(req)
}
