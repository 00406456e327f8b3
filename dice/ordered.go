package dice

import (
	"cmp"
	"slices"

	"github.com/KirkDiggler/tabletoprandom/random"
)

// OrderedDie is a fair die whose faces are totally ordered
type OrderedDie[T cmp.Ordered] struct {
	*FairDie[T]
}

// NewOrdered creates a fair die with its faces kept in ascending order
func NewOrdered[T cmp.Ordered](faces []T, source random.Source) (*OrderedDie[T], error) {
	fair, err := NewFair(faces, source)
	if err != nil {
		return nil, err
	}
	slices.Sort(fair.faces)

	return &OrderedDie[T]{FairDie: fair}, nil
}

// BestRoll returns the highest face
func (d *OrderedDie[T]) BestRoll() T {
	return d.faces[len(d.faces)-1]
}

// WorstRoll returns the lowest face
func (d *OrderedDie[T]) WorstRoll() T {
	return d.faces[0]
}

// FaceOrder returns the faces from worst to best
func (d *OrderedDie[T]) FaceOrder() []T {
	return d.Faces()
}

// NumericDie is an ordered die over numbers, so it has an expected value
type NumericDie[T Number] struct {
	*OrderedDie[T]
}

// NewNumeric creates an ordered die over numeric faces
func NewNumeric[T Number](faces []T, source random.Source) (*NumericDie[T], error) {
	ordered, err := NewOrdered(faces, source)
	if err != nil {
		return nil, err
	}

	return &NumericDie[T]{OrderedDie: ordered}, nil
}

// Mean returns the expected value of a roll
func (d *NumericDie[T]) Mean() float64 {
	return MeanOf[T](d)
}

// MeanOf returns the sum of probability times face over the face set of any
// numeric die
func MeanOf[T Number](die Die[T]) float64 {
	var mean float64
	for _, face := range die.Faces() {
		mean += die.Probability(face) * float64(face)
	}
	return mean
}
