package elemental

import (
	"math"

	"github.com/l1jgo/horde/internal/vmath"
)

// Ledger holds an enemy's stacks, one slot per element. The zero value is
// empty and ready to use. Touched only from the sequential frame phases.
type Ledger struct {
	stacks []Stack
}

func (l *Ledger) Len() int { return len(l.stacks) }

// Find returns the stack for an element, or nil.
func (l *Ledger) Find(e Element) *Stack {
	for i := range l.stacks {
		if l.stacks[i].Element == e {
			return &l.stacks[i]
		}
	}
	return nil
}

// Reset drops every stack; capacity is kept for the next spawn.
func (l *Ledger) Reset() {
	l.stacks = l.stacks[:0]
}

// Slow is the largest active slow across all slots.
func (l *Ledger) Slow() float64 {
	slow := 0.0
	for i := range l.stacks {
		if l.stacks[i].ActiveSlow > slow {
			slow = l.stacks[i].ActiveSlow
		}
	}
	return slow
}

// Apply adds one hit's stacks and reports whether the hit crossed the proc
// threshold (previous < threshold <= new).
func (l *Ledger) Apply(p Payload) bool {
	if p.Element == ElementNone || !(p.StacksPerHit > 0) {
		return false
	}
	s := l.Find(p.Element)
	if s == nil {
		l.stacks = append(l.stacks, Stack{Element: p.Element})
		s = &l.stacks[len(l.stacks)-1]
	}
	s.configure(p)

	prev := s.Current
	s.Current = math.Min(prev+p.StacksPerHit, s.Max)

	procced := prev < s.Threshold && s.Threshold <= s.Current
	if procced {
		s.proc()
	}
	if s.Effect == Impediment {
		s.refreshSlow()
	}
	return procced
}

// configure copies the payload's tuning onto the stack, clamping it. The
// latest hit's payload wins when several sources share an element.
func (s *Stack) configure(p Payload) {
	s.Effect = p.Effect
	s.ProcMode = p.ProcMode
	s.Reapply = p.Reapply
	s.Max = vmath.AtLeast(p.MaxStacks, 1)
	s.Threshold = vmath.Clamp(p.ProcThreshold, 1, s.Max)
	s.DecayPerSecond = math.Max(p.DecayPerSecond, 0)
	s.ConsumeOnProc = p.ConsumeOnProc
	s.DamagePerTick = math.Max(p.DamagePerTick, 0)
	s.TickInterval = vmath.AtLeast(p.TickInterval, vmath.MinInterval)
	s.Duration = vmath.AtLeast(p.Duration, vmath.MinDuration)
	s.MaxSlow = vmath.Clamp01(p.MaxSlow)
	s.SlowPerStack = math.Max(p.SlowPerStack, 0)
	s.ProcSlow = vmath.Clamp01(p.ProcSlow)
	if s.Current > s.Max {
		s.Current = s.Max
	}
}

func (s *Stack) proc() {
	switch s.Effect {
	case DamageOverTime:
		running := s.DotActive()
		s.DotRemaining = s.reapply(s.DotRemaining)
		if !running || s.Reapply != ReapplyKeep {
			s.DotTimer = s.TickInterval
		}
	case Impediment:
		s.ImpedeRemaining = s.reapply(s.ImpedeRemaining)
		s.ActiveSlow = math.Min(s.ProcSlow, s.MaxSlow)
	}
	if s.ConsumeOnProc {
		s.Current = math.Max(s.Current-s.Threshold, 0)
	}
}

func (s *Stack) reapply(remaining float64) float64 {
	if remaining <= 0 {
		return s.Duration
	}
	switch s.Reapply {
	case ReapplyExtend:
		return remaining + s.Duration
	case ReapplyKeep:
		return remaining
	}
	return s.Duration
}

// refreshSlow derives the active slow. Progressive mode follows the current
// stacks only; the proc slow applies to ThresholdOnce while its timer runs.
func (s *Stack) refreshSlow() {
	if s.ProcMode == ProgressiveUntilThreshold {
		s.ActiveSlow = vmath.Clamp(s.Current*s.SlowPerStack, 0, s.MaxSlow)
		return
	}
	if s.ImpedimentActive() {
		s.ActiveSlow = math.Min(s.ProcSlow, s.MaxSlow)
		return
	}
	s.ActiveSlow = 0
}

// Tick advances decay and timers by dt scaled with the enemy time scale
// (clamped to [0,1]). A DOT may fire several ticks in one frame when dt spans
// more than one interval, but never past its remaining duration. Stacks with
// nothing left are pruned.
func (l *Ledger) Tick(dt, timeScale float64) TickResult {
	var res TickResult
	step := math.Max(dt, 0) * vmath.Clamp01(timeScale)

	for i := range l.stacks {
		s := &l.stacks[i]

		if s.Current > 0 && s.DecayPerSecond > 0 {
			s.Current = math.Max(s.Current-s.DecayPerSecond*step, 0)
		}

		if s.DotActive() {
			d := math.Min(step, s.DotRemaining)
			s.DotRemaining -= d
			s.DotTimer -= d
			for s.DotTimer <= vmath.Epsilon {
				res.Damage += s.DamagePerTick
				s.DotTimer += s.TickInterval
			}
			if s.DotRemaining <= vmath.Epsilon {
				s.DotRemaining = 0
				s.DotTimer = 0
			}
		}

		if s.ImpedimentActive() {
			s.ImpedeRemaining -= step
			if s.ImpedeRemaining <= vmath.Epsilon {
				s.ImpedeRemaining = 0
			}
		}
		if s.Effect == Impediment {
			s.refreshSlow()
		} else {
			s.ActiveSlow = 0
		}
	}

	l.prune()
	res.Slow = l.Slow()
	return res
}

func (l *Ledger) prune() {
	kept := l.stacks[:0]
	for _, s := range l.stacks {
		if s.Current <= 0 && !s.DotActive() && !s.ImpedimentActive() {
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(l.stacks); i++ {
		l.stacks[i] = Stack{}
	}
	l.stacks = kept
}
