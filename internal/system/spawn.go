package system

import (
	"math"
	"time"

	"github.com/l1jgo/horde/internal/core/event"
	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
	"go.uber.org/zap"
)

// MaxCatchUpTicks bounds how many missed spawn intervals one frame may make
// up after a stall.
const MaxCatchUpTicks = 8

// SpawnSystem draws enemies from each spawner's pool when its spawn time is
// due. Phase 1 (Spawn).
type SpawnSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewSpawnSystem(ws *world.State, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{world: ws, log: log}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(_ time.Duration) {
	now := s.world.Clock.Elapsed
	for i, sp := range s.world.Spawners {
		if sp == nil {
			continue
		}
		s.tick(int32(i), sp, now)
	}
}

// DueTicks is the number of spawn intervals owed at elapsed. The first
// evaluation after initialization always counts as exactly one tick; later
// evaluations are clamped to [1, MaxCatchUpTicks].
func DueTicks(elapsed, next, interval float64, firstDone bool) int {
	if !firstDone {
		return 1
	}
	due := math.Floor((elapsed-next)/interval) + 1
	if !(due >= 1) {
		return 1
	}
	if due > MaxCatchUpTicks {
		return MaxCatchUpTicks
	}
	return int(due)
}

func (s *SpawnSystem) tick(owner int32, sp *world.Spawner, now float64) {
	instantiate := func() (uint32, bool) { return s.world.InstantiateEnemy(owner) }

	if !sp.State.Initialized {
		if n := sp.Config.InitialPoolCapacity - sp.Pool.Total(); n > 0 {
			sp.Pool.Expand(n, instantiate)
		}
		sp.State.Initialized = true
	}

	anchor := sp.Anchor
	if sp.Config.FollowPlayer {
		if s.world.Player == nil {
			return
		}
		anchor = s.world.Player.Position
	}

	if now < sp.State.NextSpawnTime {
		return
	}

	interval := vmath.AtLeast(sp.Config.Interval, vmath.MinInterval)
	due := DueTicks(now, sp.State.NextSpawnTime, interval, sp.State.FirstTickDone)
	sp.State.FirstTickDone = true
	sp.State.NextSpawnTime += interval * float64(due)

	requested := due * max(sp.Config.SpawnPerTick, 0)
	count := min(requested, sp.Config.MaxAlive-sp.State.AliveCount)
	if count <= 0 {
		return
	}

	if missing := count - sp.Pool.Free(); missing > 0 {
		sp.Pool.Expand(max(sp.Config.ExpandBatch, missing), instantiate)
		if free := sp.Pool.Free(); free < count {
			s.log.Debug("spawner pool exhausted",
				zap.String("spawner", sp.ID),
				zap.Int("requested", count),
				zap.Int("available", free),
			)
			event.Emit(s.world.Bus, event.PoolExhausted{
				Owner:     sp.ID,
				Requested: count,
				Available: free,
				Frame:     s.world.Clock.Frame,
			})
			count = free
		}
	}

	rng := vmath.NewRand(sp.State.RNG)
	radius := math.Max(sp.Config.SpawnRadius, 0)
	for i := 0; i < count; i++ {
		idx, ok := sp.Pool.Checkout()
		if !ok {
			break
		}
		dx, dz := rng.InDisk(radius)
		s.world.ActivateEnemy(idx, vmath.Vec3{
			X: anchor.X + dx,
			Y: anchor.Y + sp.Config.HeightOffset,
			Z: anchor.Z + dz,
		})
	}
	sp.State.RNG = rng.State()
}
