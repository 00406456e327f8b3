package dice

import (
	"cmp"
	"iter"
)

// Rollable produces values on demand without depletion
type Rollable[T any] interface {
	// Roll returns the next value and records it as the last roll
	Roll() T

	// Rolls is equivalent to calling Roll n times, in order
	Rolls(n int) ([]T, error)

	// LastRoll returns the most recent roll, ok is false before the first roll
	LastRoll() (T, bool)

	// All yields Roll results until the range loop stops
	All() iter.Seq[T]
}

// HasFaceSet exposes the fixed set of values a die can produce
type HasFaceSet[T comparable] interface {
	Faces() []T
	NumFaces() int
	HasFace(face T) bool
}

// Probabilistic describes the distribution of a die
type Probabilistic[T comparable] interface {
	// Probability returns 0 for values that are not faces of the die
	Probability(face T) float64

	// Mode returns the most likely face(s)
	Mode() []T
}

// Orderable is implemented by dice whose faces have a total order
type Orderable[T cmp.Ordered] interface {
	BestRoll() T
	WorstRoll() T
	FaceOrder() []T
}

// Die is a rollable source over a finite face set
type Die[T comparable] interface {
	Rollable[T]
	HasFaceSet[T]
	Probabilistic[T]
	String() string
}

// Ordered is a die over a totally ordered face set
type Ordered[T cmp.Ordered] interface {
	Die[T]
	Orderable[T]
}

// Chargeable is implemented by dice that spend charge on their best face
type Chargeable interface {
	Charge() int
	Empower(charge int) (int, error)
	Dispel()
}

// Number is the set of face types a numeric die can average
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
