package world

import (
	"math"

	"github.com/l1jgo/horde/internal/data"
	"github.com/l1jgo/horde/internal/elemental"
	"github.com/l1jgo/horde/internal/vmath"
)

// Enemy is a pooled enemy record. Created once by its spawner's pool and
// reused indefinitely; never destroyed while the spawner lives.
type Enemy struct {
	Actor
	PrefabID         string
	Health           float64
	MaxHealth        float64
	BodyRadius       float64
	ContactDamage    float64
	ContactRadius    float64
	ContactCooldown  float64
	ContactTimer     float64
	MoveSpeed        float64
	Acceleration     float64
	SeparationRadius float64
	SeparationWeight float64

	Elements elemental.Ledger
	Slow     float64 // aggregated elemental slow, read by movement
}

func newEnemy(owner int32, p *data.EnemyPrefab) Enemy {
	e := Enemy{
		Actor:            Actor{Owner: owner, Position: vmath.Parked},
		PrefabID:         p.ID,
		MaxHealth:        math.Max(p.MaxHealth, 1),
		BodyRadius:       vmath.AtLeast(p.BodyRadius, vmath.MinRadius),
		ContactDamage:    math.Max(p.ContactDamage, 0),
		ContactRadius:    vmath.AtLeast(p.ContactRadius, vmath.MinRadius),
		ContactCooldown:  vmath.AtLeast(p.ContactCooldown, vmath.MinInterval),
		MoveSpeed:        math.Max(p.MoveSpeed, 0),
		Acceleration:     math.Max(p.Acceleration, 0),
		SeparationRadius: vmath.AtLeast(p.SeparationRadius, vmath.MinRadius),
		SeparationWeight: math.Max(p.SeparationWeight, 0),
	}
	e.Health = e.MaxHealth
	return e
}

// resetRuntime clears everything that must not carry over to the next spawn.
func (e *Enemy) resetRuntime() {
	e.Velocity = vmath.Vec3{}
	e.ContactTimer = 0
	e.Health = e.MaxHealth
	e.Elements.Reset()
	e.Slow = 0
}
