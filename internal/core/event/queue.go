package event

// Queue is an append-only per-frame request list. Producers Push during the
// frame; the owning system Drains it once, which also clears it.
type Queue[T any] struct {
	items []T
}

func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{items: make([]T, 0, capacity)}
}

func (q *Queue[T]) Push(v T) {
	q.items = append(q.items, v)
}

func (q *Queue[T]) Len() int { return len(q.items) }

// Drain visits every queued item in push order and empties the queue. Items
// pushed by fn during the drain are kept for the next drain.
func (q *Queue[T]) Drain(fn func(T)) {
	items := q.items
	q.items = nil
	for _, v := range items {
		fn(v)
	}
	if q.items == nil {
		var zero T
		for i := range items {
			items[i] = zero
		}
		q.items = items[:0]
	}
}
