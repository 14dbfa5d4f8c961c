package system

import (
	"math"
	"time"

	"github.com/l1jgo/horde/internal/core/event"
	coresys "github.com/l1jgo/horde/internal/core/system"
	"github.com/l1jgo/horde/internal/data"
	"github.com/l1jgo/horde/internal/vmath"
	"github.com/l1jgo/horde/internal/world"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CollisionOptions tunes the parallel query phase. The cell size is the
// largest live enemy body radius (at least 0.25) and the query scans the 3x3
// cells around each projectile, so every enemy within one cell size is seen.
// An enemy whose body + projectile radius reaches past one cell can be
// missed when the projectile sits near a cell edge.
type CollisionOptions struct {
	Workers           int // upper bound on concurrent query goroutines
	ParallelThreshold int // below this many projectiles the query runs inline
}

// hit is one projectile's query result. Each query writes only its own slot.
type hit struct {
	enemy  uint32
	distSq float64
	found  bool
}

// CollisionSystem matches projectiles to enemies through the spatial hash,
// at most one enemy per projectile per frame, and applies damage, splits and
// elemental payloads. Phase 3 (Collide).
type CollisionSystem struct {
	world    *world.State
	opts     CollisionOptions
	modifier DamageModifier
	log      *zap.Logger

	shots   []uint32
	hits    []hit
	pending map[uint32]float64
	order   []uint32
}

func NewCollisionSystem(ws *world.State, opts CollisionOptions, log *zap.Logger) *CollisionSystem {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &CollisionSystem{
		world:   ws,
		opts:    opts,
		log:     log,
		pending: make(map[uint32]float64),
	}
}

// SetDamageModifier installs an optional damage hook; nil removes it.
func (s *CollisionSystem) SetDamageModifier(m DamageModifier) { s.modifier = m }

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollide }

func (s *CollisionSystem) Update(_ time.Duration) {
	if s.build() == 0 {
		return
	}

	s.shots = s.shots[:0]
	s.world.Projectiles.Each(func(idx uint32, p *world.Projectile) {
		if p.Live() {
			s.shots = append(s.shots, idx)
		}
	})
	if len(s.shots) == 0 {
		return
	}
	if cap(s.hits) < len(s.shots) {
		s.hits = make([]hit, len(s.shots))
	}
	s.hits = s.hits[:len(s.shots)]

	s.query()
	s.resolve()
}

// build rehashes every live enemy and returns how many were inserted.
func (s *CollisionSystem) build() int {
	maxBody := 0.0
	s.world.Enemies.Each(func(_ uint32, e *world.Enemy) {
		if e.Live() {
			maxBody = math.Max(maxBody, e.BodyRadius)
		}
	})
	grid := s.world.Grid
	grid.Reset(math.Max(vmath.MinCellSize, maxBody))
	n := 0
	s.world.Enemies.Each(func(idx uint32, e *world.Enemy) {
		if e.Live() {
			grid.Insert(idx, e.Position)
			n++
		}
	})
	return n
}

// query fills s.hits. Workers only read the grid and actor records.
func (s *CollisionSystem) query() {
	n := len(s.shots)
	if n < s.opts.ParallelThreshold || s.opts.Workers == 1 {
		for i := range s.shots {
			s.hits[i] = s.nearest(s.shots[i])
		}
		return
	}

	chunk := (n + s.opts.Workers - 1) / s.opts.Workers
	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for start := 0; start < n; start += chunk {
		start := start // per-iteration copy (go 1.21 loop semantics)
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				s.hits[i] = s.nearest(s.shots[i])
			}
			return nil
		})
	}
	_ = g.Wait()
}

// nearest finds the closest overlapping enemy for one projectile. Equal
// distances go to the lowest enemy slot.
func (s *CollisionSystem) nearest(shot uint32) hit {
	p := s.world.Projectiles.Get(shot)
	best := hit{}
	s.world.Grid.ForEachNear(p.Position, func(idx uint32) {
		e := s.world.Enemies.Get(idx)
		if e == nil || !e.Live() {
			return
		}
		reach := e.BodyRadius + p.Radius
		d := vmath.PlanarDistSq(p.Position, e.Position)
		if d > reach*reach {
			return
		}
		if !best.found || d < best.distSq || (d == best.distSq && idx < best.enemy) {
			best = hit{enemy: idx, distSq: d, found: true}
		}
	})
	return best
}

// resolve applies every hit on the frame loop goroutine. Damage is summed per
// enemy first so projectile order never changes the outcome.
func (s *CollisionSystem) resolve() {
	clear(s.pending)
	s.order = s.order[:0]

	for i, shot := range s.shots {
		h := s.hits[i]
		if !h.found {
			continue
		}
		p := s.world.Projectiles.Get(shot)
		e := s.world.Enemies.Get(h.enemy)

		damage := p.Damage
		if s.modifier != nil {
			ctx := ProjectileHit{
				Projectile:  p.PrefabID,
				Enemy:       e.PrefabID,
				Damage:      damage,
				Distance:    math.Sqrt(h.distSq),
				EnemyHealth: e.Health,
				SplitChild:  p.IsSplitChild,
			}
			if p.HasElemental {
				ctx.Element = p.Elemental.Element.String()
			}
			damage = sanitizeDamage(s.log, s.modifier.ProjectileDamage(ctx), p.Damage)
		}
		if _, ok := s.pending[h.enemy]; !ok {
			s.order = append(s.order, h.enemy)
		}
		s.pending[h.enemy] += damage

		if p.Split != nil && !p.IsSplitChild {
			s.split(p, e)
		}
		if p.HasElemental {
			s.applyElemental(h.enemy, e, p)
		}
		s.world.ReleaseProjectile(shot)
	}

	for _, idx := range s.order {
		s.world.DamageEnemy(idx, s.pending[idx])
	}
}

func (s *CollisionSystem) applyElemental(idx uint32, e *world.Enemy, p *world.Projectile) {
	if !e.Elements.Apply(p.Elemental) {
		return
	}
	handle := s.world.EnemyHandle(idx)
	event.Emit(s.world.Bus, event.ElementalProc{
		Enemy:   handle,
		Element: uint8(p.Elemental.Element),
		Effect:  uint8(p.Elemental.Effect),
		Frame:   s.world.Clock.Frame,
	})
	if p.Elemental.ProcVFX {
		s.world.VfxRequests.Push(world.VfxRequest{
			Prefab:    "proc_" + p.Elemental.Element.String(),
			Position:  e.Position,
			Scale:     1,
			Lifetime:  math.Max(p.Elemental.Duration, 0.25),
			Follow:    handle,
			HasFollow: true,
		})
	}
}

// split queues child projectiles on the parent's shooter. Children start
// just outside the struck enemy so they do not hit it again.
func (s *CollisionSystem) split(p *world.Projectile, e *world.Enemy) {
	sh := s.world.Shooter(p.Owner)
	if sh == nil {
		return
	}
	base := vmath.Yaw(p.TravelDir())
	damageScale := orDefault(p.Split.DamageScale, 1)
	scale := orDefault(p.Split.ScaleMultiplier, 1)
	speed := p.Velocity.PlanarLen()
	clearance := e.BodyRadius + p.Radius

	for _, angle := range SplitAngles(p.Split, base) {
		dir := vmath.FromYaw(angle)
		pos := e.Position.Add(dir.Scale(clearance))
		pos.Y = p.Position.Y
		sh.Fire(world.SpawnRequest{
			Position:        pos,
			Direction:       dir,
			Speed:           speed,
			Range:           p.Range,
			Lifetime:        p.Lifetime,
			Damage:          p.Damage * damageScale,
			ScaleMultiplier: scale,
			IsSplitChild:    true,
		})
	}
}

// SplitAngles returns child travel angles in radians. A custom angle list
// (degrees, relative to base) replaces the uniform spread. A spread of 360
// degrees or more places children evenly around the circle.
func SplitAngles(spec *data.SplitSpec, base float64) []float64 {
	if len(spec.Angles) > 0 {
		out := make([]float64, len(spec.Angles))
		for i, a := range spec.Angles {
			out[i] = base + vmath.DegToRad(a)
		}
		return out
	}
	n := spec.Count
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{base}
	}
	out := make([]float64, n)
	if spec.SpreadDegrees >= 360 {
		step := 2 * math.Pi / float64(n)
		for i := range out {
			out[i] = base + step*float64(i)
		}
		return out
	}
	spread := vmath.DegToRad(math.Max(spec.SpreadDegrees, 0))
	step := spread / float64(n-1)
	for i := range out {
		out[i] = base - spread/2 + step*float64(i)
	}
	return out
}
