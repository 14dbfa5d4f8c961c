package system_test

import (
	"time"

	"github.com/l1jgo/horde/internal/data"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
)

const frame = 16 * time.Millisecond

func gruntPrefab() *data.EnemyPrefab {
	return &data.EnemyPrefab{
		ID:               "grunt",
		MaxHealth:        10,
		BodyRadius:       0.5,
		ContactDamage:    5,
		ContactRadius:    0.8,
		ContactCooldown:  1,
		MoveSpeed:        2,
		SeparationRadius: 1,
	}
}

func boltPrefab() *data.ProjectilePrefab {
	return &data.ProjectilePrefab{ID: "bolt", Speed: 10, Damage: 4, Range: 20, Radius: 0.2, Scale: 1}
}

// fixture is a state with one spawner (owner 0) and one shooter (owner 0).
type fixture struct {
	st      *world.State
	spawner *world.Spawner
	shooter *world.Shooter
}

func newFixture(entry data.SpawnerEntry, enemy *data.EnemyPrefab, shot *data.ProjectilePrefab) *fixture {
	st := world.NewState(0, 0)
	if entry.ID == "" {
		entry.ID = "spawner"
	}
	sp := world.NewSpawner(entry, enemy, 1)
	st.AddSpawner(sp)
	sh := world.NewShooter(data.ShooterEntry{ID: "shooter", ExpandBatch: 4}, shot)
	st.AddShooter(sh)
	return &fixture{st: st, spawner: sp, shooter: sh}
}

func newCombatFixture() *fixture {
	return newFixture(data.SpawnerEntry{MaxAlive: 100}, gruntPrefab(), boltPrefab())
}

// enemyAt activates a pooled enemy at pos and returns its slot.
func (f *fixture) enemyAt(pos vmath.Vec3) uint32 {
	if f.spawner.Pool.Free() == 0 {
		f.spawner.Pool.Expand(1, func() (uint32, bool) { return f.st.InstantiateEnemy(0) })
	}
	idx, ok := f.spawner.Pool.Checkout()
	if !ok {
		panic("enemy pool empty")
	}
	f.st.ActivateEnemy(idx, pos)
	return idx
}

// shotAt activates a pooled projectile at pos and returns its slot.
func (f *fixture) shotAt(pos, vel vmath.Vec3, damage float64) uint32 {
	if f.shooter.Pool.Free() == 0 {
		f.shooter.Pool.Expand(1, func() (uint32, bool) { return f.st.InstantiateProjectile(0) })
	}
	idx, ok := f.shooter.Pool.Checkout()
	if !ok {
		panic("projectile pool empty")
	}
	p := f.st.ActivateProjectile(idx)
	p.Position = pos
	p.Velocity = vel
	p.Damage = damage
	return idx
}

func (f *fixture) enemy(idx uint32) *world.Enemy           { return f.st.Enemies.Get(idx) }
func (f *fixture) projectile(idx uint32) *world.Projectile { return f.st.Projectiles.Get(idx) }

// conserved reports alive + free == total for every owner.
func (f *fixture) conserved() bool {
	for _, sp := range f.st.Spawners {
		if sp.State.AliveCount+sp.Pool.Free() != sp.Pool.Total() {
			return false
		}
	}
	for _, sh := range f.st.Shooters {
		if sh.AliveCount+sh.Pool.Free() != sh.Pool.Total() {
			return false
		}
	}
	return true
}

// firstLive returns the first active projectile in slot order.
func (f *fixture) firstLive() *world.Projectile {
	var out *world.Projectile
	f.st.Projectiles.Each(func(_ uint32, p *world.Projectile) {
		if out == nil && p.Active {
			out = p
		}
	})
	return out
}
