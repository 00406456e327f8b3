package dice

import (
	"fmt"
	"iter"

	"github.com/KirkDiggler/tabletoprandom/random"
)

// FairDie is a die where every face is equally likely
type FairDie[T comparable] struct {
	faces  []T
	index  map[T]struct{}
	source random.Source
	name   string

	last   T
	rolled bool
}

// NewFair creates a fair die over the given faces.
// Repeated faces are collapsed, the first occurrence keeps its position.
// A face that is not equal to itself, such as NaN, is rejected with
// ErrInvalidFace.
func NewFair[T comparable](faces []T, source random.Source) (*FairDie[T], error) {
	if source == nil {
		return nil, ErrNilSource
	}

	unique := make([]T, 0, len(faces))
	index := make(map[T]struct{}, len(faces))
	for _, face := range faces {
		if face != face {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFace, face)
		}
		if _, ok := index[face]; ok {
			continue
		}
		index[face] = struct{}{}
		unique = append(unique, face)
	}

	if len(unique) == 0 {
		return nil, ErrInvalidFaceCount
	}

	return &FairDie[T]{
		faces:  unique,
		index:  index,
		source: source,
		name:   fmt.Sprintf("d(%d)", len(unique)),
	}, nil
}

// Roll returns a uniformly chosen face
func (d *FairDie[T]) Roll() T {
	d.last = d.faces[d.source.Intn(len(d.faces))]
	d.rolled = true
	return d.last
}

// Rolls returns n sequential rolls
func (d *FairDie[T]) Rolls(n int) ([]T, error) {
	return rolls(n, d.Roll)
}

// All rolls the die for as long as the caller keeps ranging
func (d *FairDie[T]) All() iter.Seq[T] {
	return endless(d.Roll)
}

// LastRoll returns the most recent roll
func (d *FairDie[T]) LastRoll() (T, bool) {
	return d.last, d.rolled
}

// Faces returns a copy of the face set
func (d *FairDie[T]) Faces() []T {
	faces := make([]T, len(d.faces))
	copy(faces, d.faces)
	return faces
}

// NumFaces returns the number of distinct faces
func (d *FairDie[T]) NumFaces() int {
	return len(d.faces)
}

// HasFace reports whether face is on the die
func (d *FairDie[T]) HasFace(face T) bool {
	_, ok := d.index[face]
	return ok
}

// Probability returns 1/NumFaces for faces of the die and 0 otherwise
func (d *FairDie[T]) Probability(face T) float64 {
	if !d.HasFace(face) {
		return 0
	}
	return 1 / float64(len(d.faces))
}

// Mode returns every face, they are all equally likely
func (d *FairDie[T]) Mode() []T {
	return d.Faces()
}

func (d *FairDie[T]) String() string {
	return d.name
}

// rolls calls roll n times, n must not be negative
func rolls[T any](n int, roll func() T) ([]T, error) {
	if n < 0 {
		return nil, ErrNegativeRolls
	}

	results := make([]T, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, roll())
	}
	return results, nil
}

// endless yields roll() until the consumer stops
func endless[T any](roll func() T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			if !yield(roll()) {
				return
			}
		}
	}
}
