package system

import (
	"time"

	"github.com/l1jgo/horde/internal/core/event"
	coresys "github.com/l1jgo/horde/internal/core/system"
)

// InputSystem delivers the events emitted during the previous frame. Events
// emitted in frame N reach subscribers at the start of frame N+1.
// Phase 0 (Input).
type InputSystem struct {
	bus *event.Bus
}

func NewInputSystem(bus *event.Bus) *InputSystem {
	return &InputSystem{bus: bus}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
