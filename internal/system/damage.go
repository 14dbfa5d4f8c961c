package system

import (
	"math"

	"go.uber.org/zap"
)

// ProjectileHit describes one resolved projectile hit before damage is
// summed onto the enemy.
type ProjectileHit struct {
	Projectile  string
	Enemy       string
	Damage      float64
	Distance    float64
	EnemyHealth float64
	Element     string // empty without an elemental payload
	SplitChild  bool
}

// ExplosionHit describes one enemy caught in an explosion.
type ExplosionHit struct {
	Source      string
	Enemy       string
	Damage      float64
	Distance    float64
	Radius      float64
	EnemyHealth float64
}

// DamageModifier transforms base damage before it is applied. It is only
// called from the sequential resolution step.
type DamageModifier interface {
	ProjectileDamage(hit ProjectileHit) float64
	ExplosionDamage(hit ExplosionHit) float64
}

// sanitizeDamage keeps a hook result usable: non-finite values fall back to
// base damage and negative values become zero.
func sanitizeDamage(log *zap.Logger, v, base float64) float64 {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		log.Debug("damage modifier returned non-finite value", zap.Float64("base", base))
		return base
	case v < 0:
		return 0
	}
	return v
}
