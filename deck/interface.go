package deck

import "iter"

// Drawable produces values by removing them from internal state
type Drawable[T any] interface {
	// Draw returns the next value, or ErrExhausted when nothing is left
	Draw() (T, error)

	// Draws draws up to n values and stops early on exhaustion
	Draws(n int) []T

	// LastDraw returns the most recent draw, ok is false before the first draw
	LastDraw() (T, bool)

	// All yields draws until the source is exhausted or the range loop stops
	All() iter.Seq[T]
}

// FiniteDrawable is a Drawable over a finite pool that tracks what was drawn
type FiniteDrawable[T comparable] interface {
	Drawable[T]

	// Len returns the number of undrawn elements
	Len() int

	// Pool returns the undrawn elements with their counts
	Pool() map[T]int

	// Drawn returns the drawn elements with their counts
	Drawn() map[T]int

	// ReturnCard puts a drawn element back and returns the resulting pool
	ReturnCard(card T, placeTop bool) (map[T]int, error)

	// ReplaceAll returns every drawn element and returns the resulting pool
	ReplaceAll() map[T]int

	// DrawAndReplace draws with replacement
	DrawAndReplace() (T, error)
}
