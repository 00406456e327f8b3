package deck

import (
	"fmt"
	"iter"

	"github.com/KirkDiggler/tabletoprandom/random"
)

// Config for a deck
type Config struct {
	// Source used by Shuffle. A seeded source is created when nil.
	Source random.Source

	// StrictReturns rejects returning more copies of a card than are
	// currently drawn. By default returns are accepted as given and drawn
	// counts may go negative.
	StrictReturns bool
}

var _ FiniteDrawable[string] = (*Deck[string])(nil)

// Deck is a finite pool of cards. The undrawn cards keep their order, the
// front is the next card to draw. Drawn cards are only counted.
type Deck[T comparable] struct {
	cards  deque[T]
	drawn  *multiset[T]
	source random.Source
	strict bool

	last      T
	drawnOnce bool
}

// New creates a deck holding cards in the given order. Duplicates are allowed.
func New[T comparable](cards []T, cfg *Config) *Deck[T] {
	d := &Deck[T]{
		cards: newDeque(cards),
		drawn: newMultiset[T](),
	}

	if cfg != nil {
		d.source = cfg.Source
		d.strict = cfg.StrictReturns
	}
	if d.source == nil {
		d.source = random.New(nil)
	}

	return d
}

// TryDraw draws the front card, ok is false when the deck is exhausted
func (d *Deck[T]) TryDraw() (card T, ok bool) {
	card, ok = d.cards.PopFront()
	if !ok {
		return card, false
	}

	d.drawn.Add(card, 1)
	d.last = card
	d.drawnOnce = true
	return card, true
}

// Draw draws the front card or returns ErrExhausted
func (d *Deck[T]) Draw() (T, error) {
	card, ok := d.TryDraw()
	if !ok {
		return card, ErrExhausted
	}
	return card, nil
}

// Draws draws up to n cards; fewer are returned when the deck runs out
func (d *Deck[T]) Draws(n int) []T {
	if n <= 0 {
		return []T{}
	}

	cards := make([]T, 0, min(n, d.cards.Len()))
	for i := 0; i < n; i++ {
		card, ok := d.TryDraw()
		if !ok {
			break
		}
		cards = append(cards, card)
	}
	return cards
}

// All draws cards front first until the deck is exhausted. Stopping the range
// loop early leaves the remaining cards undrawn.
func (d *Deck[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			card, ok := d.TryDraw()
			if !ok || !yield(card) {
				return
			}
		}
	}
}

// LastDraw returns the most recently drawn card
func (d *Deck[T]) LastDraw() (T, bool) {
	return d.last, d.drawnOnce
}

// Peek returns the next n cards without drawing them
func (d *Deck[T]) Peek(n int) []T {
	return d.cards.Front(n)
}

// Shuffle randomizes the order of the undrawn cards
func (d *Deck[T]) Shuffle() {
	d.cards.Shuffle(d.source)
}

// ReturnCards puts cards back into the deck, on top when placeTop is set and
// at the bottom otherwise. The given order is kept. Drawn counts are reduced
// by the returned cards.
func (d *Deck[T]) ReturnCards(cards []T, placeTop bool) (map[T]int, error) {
	if d.strict {
		for card, count := range countOf(cards) {
			if d.drawn.Count(card) < count {
				return d.Pool(), fmt.Errorf("%w: %v", ErrForeignReturn, card)
			}
		}
	}

	if placeTop {
		d.cards.PushFront(cards...)
	} else {
		d.cards.PushBack(cards...)
	}
	for _, card := range cards {
		d.drawn.Add(card, -1)
	}

	return d.Pool(), nil
}

// ReturnCard puts a single card back into the deck
func (d *Deck[T]) ReturnCard(card T, placeTop bool) (map[T]int, error) {
	return d.ReturnCards([]T{card}, placeTop)
}

// ReplaceAll returns every drawn card to the bottom of the deck and clears
// the drawn counts
func (d *Deck[T]) ReplaceAll() map[T]int {
	d.cards.PushBack(d.drawn.Elements()...)
	d.drawn.Reset()
	return d.Pool()
}

// DrawAndReplace draws a card and puts it back at the bottom
func (d *Deck[T]) DrawAndReplace() (T, error) {
	card, err := d.Draw()
	if err != nil {
		return card, err
	}
	if _, err := d.ReturnCard(card, false); err != nil {
		return card, err
	}
	return card, nil
}

// Pool returns the undrawn cards with their counts
func (d *Deck[T]) Pool() map[T]int {
	return countOf(d.cards.items)
}

// Drawn returns the drawn cards with their counts.
// A negative count records a card returned without having been drawn.
func (d *Deck[T]) Drawn() map[T]int {
	return d.drawn.Snapshot()
}

// Cards returns the undrawn cards in draw order
func (d *Deck[T]) Cards() []T {
	return d.cards.Values()
}

// Len returns the number of undrawn cards
func (d *Deck[T]) Len() int {
	return d.cards.Len()
}

func (d *Deck[T]) String() string {
	return fmt.Sprintf("Deck(%d undrawn, %d drawn)", d.cards.Len(), d.drawn.Total())
}
