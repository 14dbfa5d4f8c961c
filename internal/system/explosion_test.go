package system_test

import (
	"testing"

	"github.com/l1jgo/horde/internal/system"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
	"go.uber.org/zap"
)

// explode runs collision (to build the hash) and then the explosion system.
func explode(f *fixture, req world.ExplosionRequest, mod system.DamageModifier) {
	f.st.Explosions.Push(req)
	newCollision(f.st).Update(frame)
	ex := system.NewExplosionSystem(f.st, zap.NewNop())
	ex.SetDamageModifier(mod)
	ex.Update(frame)
}

func TestExplosion_NearestOnly(t *testing.T) {
	f := newCombatFixture()
	near := f.enemyAt(vmath.Vec3{X: 1})
	far := f.enemyAt(vmath.Vec3{X: -2})

	explode(f, world.ExplosionRequest{Radius: 3, Damage: 4}, nil)

	if f.enemy(near).Health != 6 {
		t.Errorf("near health = %v, want 6", f.enemy(near).Health)
	}
	if f.enemy(far).Health != 10 {
		t.Errorf("far health = %v, want 10", f.enemy(far).Health)
	}
	if f.st.Explosions.Len() != 0 {
		t.Errorf("explosion queue not drained")
	}
}

func TestExplosion_AffectAll(t *testing.T) {
	f := newCombatFixture()
	a := f.enemyAt(vmath.Vec3{X: 1})
	b := f.enemyAt(vmath.Vec3{Z: -2})
	out := f.enemyAt(vmath.Vec3{X: 4})

	explode(f, world.ExplosionRequest{Radius: 3, Damage: 20, AffectAll: true}, nil)

	for _, idx := range []uint32{a, b} {
		if f.enemy(idx).Despawn != world.DespawnKilled {
			t.Errorf("enemy %d not killed", idx)
		}
	}
	// 4 from the center: outside radius 3 plus body 0.5
	if f.enemy(out).Health != 10 {
		t.Errorf("out-of-range enemy hit")
	}
}

func TestExplosion_BodyRadiusExtendsReach(t *testing.T) {
	f := newCombatFixture()
	edge := f.enemyAt(vmath.Vec3{X: 3.4})
	explode(f, world.ExplosionRequest{Radius: 3, Damage: 1}, nil)
	if f.enemy(edge).Health != 9 {
		t.Errorf("edge health = %v, want 9", f.enemy(edge).Health)
	}
}

func TestExplosion_NonFiniteModifierFallsBack(t *testing.T) {
	f := newCombatFixture()
	e := f.enemyAt(vmath.Vec3{})
	explode(f, world.ExplosionRequest{Radius: 1, Damage: 3}, &doubler{})
	if f.enemy(e).Health != 7 {
		t.Errorf("health = %v, want 7", f.enemy(e).Health)
	}
}
