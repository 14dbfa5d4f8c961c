package ecs

// Pool is one owner's free list of parked actor slots. Slots are created only
// by Expand and are never destroyed for the lifetime of the owner.
// Accessed only from the frame loop goroutine; no locks.
type Pool struct {
	free  []uint32
	total int
}

func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{free: make([]uint32, 0, capacity)}
}

// Checkout pops a free slot from the tail. O(1); no ordering guarantee
// across returned slots.
func (p *Pool) Checkout() (uint32, bool) {
	n := len(p.free)
	if n == 0 {
		return 0, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	return idx, true
}

// Return appends a slot back to the free list.
func (p *Pool) Return(idx uint32) {
	p.free = append(p.free, idx)
}

// Expand asks instantiate for up to count new parked slots and appends them.
// It stops at the first failed instantiation (invalid prefab) and returns how
// many slots were actually added; zero means the pool is exhausted.
func (p *Pool) Expand(count int, instantiate func() (uint32, bool)) int {
	if instantiate == nil {
		return 0
	}
	grown := 0
	for grown < count {
		idx, ok := instantiate()
		if !ok {
			break
		}
		p.free = append(p.free, idx)
		grown++
	}
	p.total += grown
	return grown
}

// Free is the number of parked slots ready for checkout.
func (p *Pool) Free() int { return len(p.free) }

// Total is the number of slots ever instantiated for this owner.
func (p *Pool) Total() int { return p.total }
