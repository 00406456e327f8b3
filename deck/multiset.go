package deck

// multiset counts elements and remembers the order keys were first seen
type multiset[T comparable] struct {
	counts map[T]int
	order  []T
}

func newMultiset[T comparable]() *multiset[T] {
	return &multiset[T]{counts: make(map[T]int)}
}

// Add adjusts the count of v by delta, dropping keys that reach zero
func (m *multiset[T]) Add(v T, delta int) {
	count, ok := m.counts[v]
	if !ok {
		m.order = append(m.order, v)
	}

	count += delta
	if count != 0 {
		m.counts[v] = count
		return
	}

	delete(m.counts, v)
	for i, key := range m.order {
		if key == v {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *multiset[T]) Count(v T) int {
	return m.counts[v]
}

// Total sums the positive counts
func (m *multiset[T]) Total() int {
	total := 0
	for _, count := range m.counts {
		if count > 0 {
			total += count
		}
	}
	return total
}

// Elements expands the positive counts, grouped by key in first-seen order
func (m *multiset[T]) Elements() []T {
	elements := make([]T, 0, m.Total())
	for _, key := range m.order {
		for i := 0; i < m.counts[key]; i++ {
			elements = append(elements, key)
		}
	}
	return elements
}

func (m *multiset[T]) Snapshot() map[T]int {
	snapshot := make(map[T]int, len(m.counts))
	for key, count := range m.counts {
		snapshot[key] = count
	}
	return snapshot
}

func (m *multiset[T]) Reset() {
	m.counts = make(map[T]int)
	m.order = nil
}

// countOf builds an order-erasing view of values
func countOf[T comparable](values []T) map[T]int {
	counts := make(map[T]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	return counts
}
