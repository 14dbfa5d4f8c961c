package sim

import (
	"testing"
	"time"

	"github.com/l1jgo/horde/internal/config"
	"github.com/l1jgo/horde/internal/core/event"
	"github.com/l1jgo/horde/internal/data"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
	"pgregory.net/rapid"
)

const frame = 16 * time.Millisecond

func loadPresets(t testing.TB) *data.Presets {
	t.Helper()
	p, err := data.LoadPresets("../../data/yaml")
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	return p
}

func newEngine(t testing.TB) *Engine {
	t.Helper()
	e, err := New(Options{Config: config.Defaults(), Presets: loadPresets(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func conserved(st *world.State) bool {
	for _, sp := range st.Spawners {
		if sp.State.AliveCount+sp.Pool.Free() != sp.Pool.Total() {
			return false
		}
	}
	for _, sh := range st.Shooters {
		if sh.AliveCount+sh.Pool.Free() != sh.Pool.Total() {
			return false
		}
	}
	return true
}

func TestNew_RequiresInputs(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error without config and presets")
	}
}

func TestEngine_BuildsOwnersFromPresets(t *testing.T) {
	e := newEngine(t)
	if len(e.State.Spawners) != 3 || len(e.State.Shooters) != 4 {
		t.Fatalf("spawners=%d shooters=%d", len(e.State.Spawners), len(e.State.Shooters))
	}
	if _, ok := e.Shooter("player_frost"); !ok {
		t.Errorf("player_frost not registered")
	}
	if e.Fire("nope", world.SpawnRequest{}) {
		t.Errorf("unknown shooter accepted a request")
	}
}

func TestEngine_UnknownPrefabStaysEmpty(t *testing.T) {
	p := loadPresets(t)
	p.Spawners.Spawners = append(p.Spawners.Spawners, data.SpawnerEntry{
		ID: "ghost", EnemyID: "missing", SpawnPerTick: 4, Interval: 0.1, MaxAlive: 10,
	})
	e, err := New(Options{Config: config.Defaults(), Presets: p})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 30; i++ {
		e.Step(frame)
	}
	ghost := e.State.Spawners[len(e.State.Spawners)-1]
	if ghost.Pool.Total() != 0 || ghost.State.AliveCount != 0 {
		t.Errorf("ghost spawner spawned: total=%d alive=%d", ghost.Pool.Total(), ghost.State.AliveCount)
	}
}

func TestEngine_StepAdvancesClock(t *testing.T) {
	e := newEngine(t)
	e.Step(frame)
	e.Step(frame)
	s := e.Stats()
	if s.Frame != 2 || s.Elapsed != 2*frame.Seconds() {
		t.Errorf("frame=%d elapsed=%v", s.Frame, s.Elapsed)
	}
	if s.ActiveEnemies == 0 {
		t.Errorf("no enemies spawned on the first frames")
	}
}

func TestEngine_KillsAreCountedAndEmitted(t *testing.T) {
	e := newEngine(t)
	var kills []event.EnemyKilled
	event.Subscribe(e.State.Bus, func(ev event.EnemyKilled) { kills = append(kills, ev) })

	e.Step(frame)
	e.Explode(world.ExplosionRequest{Radius: 100, Damage: 1e6, AffectAll: true, Source: "nuke"})
	e.Step(frame)

	killed := e.State.Kills
	if killed == 0 {
		t.Fatalf("explosion killed nothing")
	}
	if len(kills) != 0 {
		t.Errorf("kill events delivered in the emitting frame")
	}
	e.Step(frame)
	if uint64(len(kills)) != killed {
		t.Errorf("kill events = %d, kills = %d", len(kills), killed)
	}
	if !conserved(e.State) {
		t.Errorf("pool conservation broken")
	}
}

func TestEngine_AutoFireHitsEnemies(t *testing.T) {
	e := newEngine(t)
	af := NewAutoFire(e, 50*time.Millisecond)
	for i := 0; i < 600; i++ {
		af.Tick(frame)
		e.Step(frame)
	}
	s := e.Stats()
	if s.Fired == 0 {
		t.Fatalf("nothing fired")
	}
	if s.Kills == 0 {
		t.Errorf("no kills after %d frames (fired %d)", s.Frame, s.Fired)
	}
	if !conserved(e.State) {
		t.Errorf("pool conservation broken")
	}
}

func TestEngine_DeterministicReplay(t *testing.T) {
	run := func() Stats {
		e := newEngine(t)
		af := NewAutoFire(e, 100*time.Millisecond)
		for i := 0; i < 240; i++ {
			af.Tick(frame)
			e.Step(frame)
		}
		return e.Stats()
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("replay differs:\n%+v\n%+v", a, b)
	}
}

func TestEngine_TimeScaleFreezesEnemies(t *testing.T) {
	e := newEngine(t)
	e.Step(frame)
	e.SetTimeScale(0)
	var before []vmath.Vec3
	e.State.Enemies.Each(func(_ uint32, en *world.Enemy) { before = append(before, en.Position) })
	e.Step(frame)
	i := 0
	e.State.Enemies.Each(func(_ uint32, en *world.Enemy) {
		if i < len(before) && en.Active && en.Position != before[i] {
			t.Errorf("enemy %d moved under zero time scale", i)
		}
		i++
	})
}

func TestEngine_RemovedPlayerSkipsFollowSpawners(t *testing.T) {
	e := newEngine(t)
	e.MovePlayer(nil)
	for i := 0; i < 10; i++ {
		e.Step(frame)
	}
	if alive := e.State.Spawners[0].State.AliveCount; alive != 0 {
		t.Errorf("follow spawner spawned %d without a player", alive)
	}
	pos := vmath.Vec3{X: 3}
	e.MovePlayer(&pos)
	e.Step(frame)
	if e.State.Spawners[0].State.AliveCount == 0 {
		t.Errorf("follow spawner idle after player returned")
	}
}

// Pool conservation must hold across arbitrary frame times, explosions and
// player moves.
func TestEngine_PoolConservationProperty(t *testing.T) {
	presets := loadPresets(t)
	rapid.Check(t, func(t *rapid.T) {
		cfg := config.Defaults()
		cfg.Simulation.Seed = rapid.Uint32().Draw(t, "seed")
		e, err := New(Options{Config: cfg, Presets: presets})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		af := NewAutoFire(e, 30*time.Millisecond)

		frames := rapid.IntRange(1, 120).Draw(t, "frames")
		for i := 0; i < frames; i++ {
			dt := time.Duration(rapid.IntRange(0, 250).Draw(t, "dt_ms")) * time.Millisecond
			if rapid.IntRange(0, 9).Draw(t, "explode") == 0 {
				e.Explode(world.ExplosionRequest{
					Position:  vmath.Vec3{X: rapid.Float64Range(-30, 30).Draw(t, "ex"), Z: rapid.Float64Range(-30, 30).Draw(t, "ez")},
					Radius:    rapid.Float64Range(0, 15).Draw(t, "radius"),
					Damage:    rapid.Float64Range(0, 500).Draw(t, "damage"),
					AffectAll: rapid.Bool().Draw(t, "all"),
				})
			}
			if rapid.IntRange(0, 19).Draw(t, "move") == 0 {
				pos := vmath.Vec3{X: rapid.Float64Range(-80, 80).Draw(t, "px"), Z: rapid.Float64Range(-80, 80).Draw(t, "pz")}
				e.MovePlayer(&pos)
			}
			af.Tick(dt)
			e.Step(dt)
			if !conserved(e.State) {
				t.Fatalf("conservation broken at frame %d", i)
			}
		}
	})
}
