// Package elemental tracks per-enemy elemental stacks: accumulation on hit,
// decay, threshold procs, and the damage-over-time and impediment timers a
// proc starts.
package elemental

import "fmt"

type Element uint8

const (
	ElementNone Element = iota
	ElementFire
	ElementIce
	ElementPoison
	ElementLightning
	ElementArcane
)

var elementNames = [...]string{"none", "fire", "ice", "poison", "lightning", "arcane"}

func (e Element) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return fmt.Sprintf("element(%d)", uint8(e))
}

func ParseElement(s string) (Element, error) {
	for i, name := range elementNames {
		if name == s {
			return Element(i), nil
		}
	}
	return ElementNone, fmt.Errorf("unknown element %q", s)
}

// EffectKind is what a proc does.
type EffectKind uint8

const (
	DamageOverTime EffectKind = iota
	Impediment
)

func ParseEffect(s string) (EffectKind, error) {
	switch s {
	case "dot", "damage_over_time":
		return DamageOverTime, nil
	case "impediment", "slow":
		return Impediment, nil
	}
	return DamageOverTime, fmt.Errorf("unknown effect %q", s)
}

// ProcMode selects how an impediment's slow is derived.
type ProcMode uint8

const (
	// ThresholdOnce applies the fixed proc slow only while the proc timer runs.
	ThresholdOnce ProcMode = iota
	// ProgressiveUntilThreshold scales slow with current stacks; the proc
	// slow is never used.
	ProgressiveUntilThreshold
)

func ParseProcMode(s string) (ProcMode, error) {
	switch s {
	case "", "threshold_once":
		return ThresholdOnce, nil
	case "progressive", "progressive_until_threshold":
		return ProgressiveUntilThreshold, nil
	}
	return ThresholdOnce, fmt.Errorf("unknown proc mode %q", s)
}

// ReapplyMode decides what a proc does to a timer that is already running.
type ReapplyMode uint8

const (
	ReapplyRefresh ReapplyMode = iota // restart at full duration
	ReapplyExtend                     // add duration to what remains
	ReapplyKeep                       // leave a running timer alone
)

func ParseReapply(s string) (ReapplyMode, error) {
	switch s {
	case "", "refresh":
		return ReapplyRefresh, nil
	case "extend":
		return ReapplyExtend, nil
	case "keep":
		return ReapplyKeep, nil
	}
	return ReapplyRefresh, fmt.Errorf("unknown reapply mode %q", s)
}

// Payload is the elemental configuration a projectile carries.
type Payload struct {
	Element        Element
	Effect         EffectKind
	ProcMode       ProcMode
	Reapply        ReapplyMode
	StacksPerHit   float64
	MaxStacks      float64
	ProcThreshold  float64
	DecayPerSecond float64
	ConsumeOnProc  bool

	// damage over time
	DamagePerTick float64
	TickInterval  float64
	Duration      float64

	// impediment, fractions in [0,1]
	SlowPerStack float64
	ProcSlow     float64
	MaxSlow      float64

	ProcVFX bool
}

// Stack is one element's ledger entry on one enemy.
// Invariant: 0 <= Current <= Max and Threshold <= Max.
type Stack struct {
	Element        Element
	Effect         EffectKind
	ProcMode       ProcMode
	Reapply        ReapplyMode
	Current        float64
	Max            float64
	Threshold      float64
	DecayPerSecond float64
	ConsumeOnProc  bool

	DamagePerTick float64
	TickInterval  float64
	Duration      float64
	DotRemaining  float64
	DotTimer      float64

	SlowPerStack    float64
	ProcSlow        float64
	MaxSlow         float64
	ImpedeRemaining float64
	ActiveSlow      float64
}

func (s *Stack) DotActive() bool        { return s.DotRemaining > 0 }
func (s *Stack) ImpedimentActive() bool { return s.ImpedeRemaining > 0 }

// TickResult is one frame's output for one enemy.
type TickResult struct {
	Damage float64 // DOT damage accumulated this frame
	Slow   float64 // max active slow across all elements
}
