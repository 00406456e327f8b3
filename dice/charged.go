package dice

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/KirkDiggler/tabletoprandom/random"
)

// ChargedDie wraps an ordered die. While it holds charge every roll spends
// one charge and lands on the inner die's best face.
type ChargedDie[T cmp.Ordered] struct {
	inner  Ordered[T]
	charge int

	last   T
	rolled bool
}

var (
	_ Chargeable   = (*ChargedDie[int])(nil)
	_ Ordered[int] = (*NumericChargedDie[int])(nil)
)

// NewCharged wraps inner with the given starting charge
func NewCharged[T cmp.Ordered](inner Ordered[T], charge int) (*ChargedDie[T], error) {
	if inner == nil {
		return nil, ErrNilDie
	}
	if charge < 0 {
		return nil, ErrNegativeCharge
	}

	return &ChargedDie[T]{
		inner:  inner,
		charge: charge,
	}, nil
}

// NumericChargedDie is a charged die over numbers
type NumericChargedDie[T Number] struct {
	*ChargedDie[T]
}

// NewNumericCharged wraps a numeric ordered die with charge
func NewNumericCharged[T Number](inner Ordered[T], charge int) (*NumericChargedDie[T], error) {
	charged, err := NewCharged(inner, charge)
	if err != nil {
		return nil, err
	}
	return &NumericChargedDie[T]{ChargedDie: charged}, nil
}

// Mean returns the expected value of an uncharged roll
func (d *NumericChargedDie[T]) Mean() float64 {
	return MeanOf[T](d.inner)
}

// NewMagical creates a charged n-sided traditional die
func NewMagical(n, charge int, source random.Source) (*NumericChargedDie[int], error) {
	inner, err := NewTraditional(n, source)
	if err != nil {
		return nil, err
	}
	return NewNumericCharged[int](inner, charge)
}

// Roll returns the best face while charged, otherwise rolls the inner die
func (d *ChargedDie[T]) Roll() T {
	if d.charge > 0 {
		d.charge--
		d.last = d.inner.BestRoll()
	} else {
		d.last = d.inner.Roll()
	}
	d.rolled = true
	return d.last
}

// Rolls returns n sequential rolls, spending charge as it goes
func (d *ChargedDie[T]) Rolls(n int) ([]T, error) {
	return rolls(n, d.Roll)
}

// All rolls the die, spending charge first
func (d *ChargedDie[T]) All() iter.Seq[T] {
	return endless(d.Roll)
}

// LastRoll returns the most recent roll of the charged die
func (d *ChargedDie[T]) LastRoll() (T, bool) {
	return d.last, d.rolled
}

// Charge returns the remaining charge
func (d *ChargedDie[T]) Charge() int {
	return d.charge
}

// Empower adds charge and returns the new total
func (d *ChargedDie[T]) Empower(charge int) (int, error) {
	if charge < 0 {
		return d.charge, ErrNegativeCharge
	}
	d.charge += charge
	return d.charge, nil
}

// Dispel removes all charge
func (d *ChargedDie[T]) Dispel() {
	d.charge = 0
}

// Inner returns the wrapped die
func (d *ChargedDie[T]) Inner() Ordered[T] {
	return d.inner
}

func (d *ChargedDie[T]) Faces() []T {
	return d.inner.Faces()
}

func (d *ChargedDie[T]) NumFaces() int {
	return d.inner.NumFaces()
}

func (d *ChargedDie[T]) HasFace(face T) bool {
	return d.inner.HasFace(face)
}

// Probability describes an uncharged roll of the inner die
func (d *ChargedDie[T]) Probability(face T) float64 {
	return d.inner.Probability(face)
}

func (d *ChargedDie[T]) Mode() []T {
	return d.inner.Mode()
}

func (d *ChargedDie[T]) BestRoll() T {
	return d.inner.BestRoll()
}

func (d *ChargedDie[T]) WorstRoll() T {
	return d.inner.WorstRoll()
}

func (d *ChargedDie[T]) FaceOrder() []T {
	return d.inner.FaceOrder()
}

func (d *ChargedDie[T]) String() string {
	return fmt.Sprintf("%s(%d)", d.inner.String(), d.charge)
}
