package ecs

// SlotStore is a dense, append-only record store indexed by slot. Records
// are parked and reused rather than removed, so indices stay stable.
//
// Pointers returned by Get are valid until the next Add; callers re-fetch
// after anything that may instantiate.
type SlotStore[T any] struct {
	data []T
}

func NewSlotStore[T any](capacity int) *SlotStore[T] {
	return &SlotStore[T]{
		data: make([]T, 0, capacity),
	}
}

// Add appends a record and returns its slot index.
func (s *SlotStore[T]) Add(v T) uint32 {
	s.data = append(s.data, v)
	return uint32(len(s.data) - 1)
}

// Get returns the record at idx, or nil when idx is out of range.
func (s *SlotStore[T]) Get(idx uint32) *T {
	if int(idx) >= len(s.data) {
		return nil
	}
	return &s.data[idx]
}

func (s *SlotStore[T]) Len() int {
	return len(s.data)
}

// Each visits every record in slot order.
func (s *SlotStore[T]) Each(fn func(uint32, *T)) {
	for i := range s.data {
		fn(uint32(i), &s.data[i])
	}
}
