package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/horde/internal/elemental"
	"gopkg.in/yaml.v3"
)

// SplitSpec spawns child projectiles when the parent hits an enemy.
// Angles, when set, replace the uniform spread (degrees, relative to the
// parent's travel angle).
type SplitSpec struct {
	Count           int       `yaml:"count"`
	SpreadDegrees   float64   `yaml:"spread_degrees"`
	Angles          []float64 `yaml:"angles"`
	DamageScale     float64   `yaml:"damage_scale"`
	ScaleMultiplier float64   `yaml:"scale_multiplier"`
}

// OrbitSpec makes a projectile circle its shooter instead of flying straight.
// One full revolution despawns it.
type OrbitSpec struct {
	Radius       float64 `yaml:"radius"`
	AngularSpeed float64 `yaml:"angular_speed"` // radians per second
}

// ElementalSpec is the YAML form of an elemental payload.
type ElementalSpec struct {
	Element        string  `yaml:"element"`
	Effect         string  `yaml:"effect"`    // dot | impediment
	ProcMode       string  `yaml:"proc_mode"` // threshold_once | progressive
	Reapply        string  `yaml:"reapply"`   // refresh | extend | keep
	StacksPerHit   float64 `yaml:"stacks_per_hit"`
	MaxStacks      float64 `yaml:"max_stacks"`
	ProcThreshold  float64 `yaml:"proc_threshold"`
	DecayPerSecond float64 `yaml:"decay_per_second"`
	ConsumeOnProc  bool    `yaml:"consume_on_proc"`
	DamagePerTick  float64 `yaml:"damage_per_tick"`
	TickInterval   float64 `yaml:"tick_interval"`
	Duration       float64 `yaml:"duration"`
	SlowPerStack   float64 `yaml:"slow_per_stack"`
	ProcSlow       float64 `yaml:"proc_slow"`
	MaxSlow        float64 `yaml:"max_slow"`
	ProcVFX        bool    `yaml:"proc_vfx"`
}

// Payload converts the YAML strings into an elemental.Payload.
func (s *ElementalSpec) Payload() (elemental.Payload, error) {
	el, err := elemental.ParseElement(s.Element)
	if err != nil {
		return elemental.Payload{}, err
	}
	effect, err := elemental.ParseEffect(s.Effect)
	if err != nil {
		return elemental.Payload{}, err
	}
	mode, err := elemental.ParseProcMode(s.ProcMode)
	if err != nil {
		return elemental.Payload{}, err
	}
	reapply, err := elemental.ParseReapply(s.Reapply)
	if err != nil {
		return elemental.Payload{}, err
	}
	return elemental.Payload{
		Element:        el,
		Effect:         effect,
		ProcMode:       mode,
		Reapply:        reapply,
		StacksPerHit:   s.StacksPerHit,
		MaxStacks:      s.MaxStacks,
		ProcThreshold:  s.ProcThreshold,
		DecayPerSecond: s.DecayPerSecond,
		ConsumeOnProc:  s.ConsumeOnProc,
		DamagePerTick:  s.DamagePerTick,
		TickInterval:   s.TickInterval,
		Duration:       s.Duration,
		SlowPerStack:   s.SlowPerStack,
		ProcSlow:       s.ProcSlow,
		MaxSlow:        s.MaxSlow,
		ProcVFX:        s.ProcVFX,
	}, nil
}

// ProjectilePrefab holds the static tuning for a projectile type.
type ProjectilePrefab struct {
	ID        string         `yaml:"id"`
	Speed     float64        `yaml:"speed"`
	Damage    float64        `yaml:"damage"`
	Range     float64        `yaml:"range"`
	Lifetime  float64        `yaml:"lifetime"` // seconds
	Radius    float64        `yaml:"radius"`
	Scale     float64        `yaml:"scale"`
	Split     *SplitSpec     `yaml:"split,omitempty"`
	Orbit     *OrbitSpec     `yaml:"orbit,omitempty"`
	Elemental *ElementalSpec `yaml:"elemental,omitempty"`

	payload    elemental.Payload
	hasPayload bool
}

// ElementalPayload returns the payload resolved at load time.
func (p *ProjectilePrefab) ElementalPayload() (elemental.Payload, bool) {
	return p.payload, p.hasPayload
}

type projectileListFile struct {
	Projectiles []ProjectilePrefab `yaml:"projectiles"`
}

// ProjectileTable holds all projectile prefabs indexed by ID.
type ProjectileTable struct {
	prefabs map[string]*ProjectilePrefab
}

// LoadProjectileTable loads projectile prefabs from a YAML file.
func LoadProjectileTable(path string) (*ProjectileTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projectile_list: %w", err)
	}
	t, err := ParseProjectileTable(raw)
	if err != nil {
		return nil, fmt.Errorf("parse projectile_list: %w", err)
	}
	return t, nil
}

func ParseProjectileTable(raw []byte) (*ProjectileTable, error) {
	var f projectileListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	t := &ProjectileTable{prefabs: make(map[string]*ProjectilePrefab, len(f.Projectiles))}
	for i := range f.Projectiles {
		p := &f.Projectiles[i]
		if p.ID == "" {
			return nil, fmt.Errorf("projectile #%d: missing id", i)
		}
		if p.Scale == 0 {
			p.Scale = 1
		}
		if p.Elemental != nil {
			payload, err := p.Elemental.Payload()
			if err != nil {
				return nil, fmt.Errorf("projectile %s: %w", p.ID, err)
			}
			p.payload = payload
			p.hasPayload = true
		}
		t.prefabs[p.ID] = p
	}
	return t, nil
}

// Get returns a projectile prefab by ID, or nil if not found.
func (t *ProjectileTable) Get(id string) *ProjectilePrefab {
	if t == nil {
		return nil
	}
	return t.prefabs[id]
}

// Count returns the number of loaded prefabs.
func (t *ProjectileTable) Count() int {
	return len(t.prefabs)
}
