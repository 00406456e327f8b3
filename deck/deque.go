package deck

import "github.com/KirkDiggler/tabletoprandom/random"

// deque is an ordered sequence with pushes at both ends and pops at the front
type deque[T any] struct {
	items []T
}

func newDeque[T any](items []T) deque[T] {
	cloned := make([]T, len(items))
	copy(cloned, items)
	return deque[T]{items: cloned}
}

func (q *deque[T]) Len() int {
	return len(q.items)
}

func (q *deque[T]) PopFront() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// PushFront places items ahead of the current front, keeping their order
func (q *deque[T]) PushFront(items ...T) {
	if len(items) == 0 {
		return
	}
	merged := make([]T, 0, len(items)+len(q.items))
	merged = append(merged, items...)
	q.items = append(merged, q.items...)
}

func (q *deque[T]) PushBack(items ...T) {
	q.items = append(q.items, items...)
}

// Front returns a copy of the first n items, clamped to the length
func (q *deque[T]) Front(n int) []T {
	n = max(0, min(n, len(q.items)))
	front := make([]T, n)
	copy(front, q.items[:n])
	return front
}

func (q *deque[T]) Shuffle(source random.Source) {
	source.Shuffle(len(q.items), func(i, j int) {
		q.items[i], q.items[j] = q.items[j], q.items[i]
	})
}

func (q *deque[T]) Values() []T {
	return q.Front(len(q.items))
}
