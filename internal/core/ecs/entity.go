package ecs

// Handle encodes a 32-bit slot index in the lower bits and a 32-bit spawn
// version in the upper bits. The version increments every time the slot is
// reused, so a handle captured before a despawn/respawn cycle stops matching.
type Handle uint64

func NewHandle(index uint32, version uint32) Handle {
	return Handle(uint64(version)<<32 | uint64(index))
}

func (h Handle) Index() uint32   { return uint32(h) }
func (h Handle) Version() uint32 { return uint32(h >> 32) }

// IsZero reports a handle that was never issued. Issued versions are never 0.
func (h Handle) IsZero() bool { return h.Version() == 0 }

// NextVersion bumps a spawn version, wrapping past 0 so a live actor never
// carries the "never issued" version.
func NextVersion(v uint32) uint32 {
	v++
	if v == 0 {
		v = 1
	}
	return v
}
