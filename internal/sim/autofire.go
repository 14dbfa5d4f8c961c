package sim

import (
	"math"
	"time"

	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
)

// AutoFire is a demo request producer: every interval it asks each shooter
// to fire at the enemy nearest to the shooter.
type AutoFire struct {
	engine   *Engine
	interval float64
	timer    float64
}

func NewAutoFire(e *Engine, interval time.Duration) *AutoFire {
	return &AutoFire{
		engine:   e,
		interval: vmath.AtLeast(interval.Seconds(), vmath.MinInterval),
	}
}

// Tick queues requests when the interval elapses and returns how many were
// queued.
func (a *AutoFire) Tick(dt time.Duration) int {
	a.timer += dt.Seconds()
	if a.timer < a.interval {
		return 0
	}
	a.timer = math.Mod(a.timer, a.interval)

	st := a.engine.State
	queued := 0
	for _, sh := range st.Shooters {
		target, ok := a.nearest(sh.Position)
		if !ok {
			continue
		}
		dir := target.Sub(sh.Position)
		dir.Y = 0
		sh.Fire(world.SpawnRequest{
			Position:  sh.Position,
			Direction: dir,
		})
		queued++
	}
	return queued
}

func (a *AutoFire) nearest(from vmath.Vec3) (vmath.Vec3, bool) {
	best, bestDist := vmath.Vec3{}, math.Inf(1)
	a.engine.State.Enemies.Each(func(_ uint32, e *world.Enemy) {
		if !e.Live() {
			return
		}
		if d := vmath.PlanarDistSq(from, e.Position); d < bestDist {
			best, bestDist = e.Position, d
		}
	})
	return best, !math.IsInf(bestDist, 1)
}
