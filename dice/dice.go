package dice

import (
	"cmp"
	"fmt"

	"github.com/KirkDiggler/tabletoprandom/random"
)

// Fudge die faces
const (
	FudgeMinus = -1
	FudgeBlank = 0
	FudgePlus  = 1
)

// NewTraditional creates a fair die numbered 1 through n
func NewTraditional(n int, source random.Source) (*NumericDie[int], error) {
	if n < 1 {
		return nil, ErrInvalidFaceCount
	}

	faces := make([]int, n)
	for i := range faces {
		faces[i] = i + 1
	}

	die, err := NewNumeric(faces, source)
	if err != nil {
		return nil, err
	}
	die.name = fmt.Sprintf("d%d", n)
	return die, nil
}

// NewFudge creates a fudge die with faces -1, 0 and +1
func NewFudge(source random.Source) (*NumericDie[int], error) {
	die, err := NewNumeric([]int{FudgeMinus, FudgeBlank, FudgePlus}, source)
	if err != nil {
		return nil, err
	}
	die.name = "dF"
	return die, nil
}

// QuickRoll rolls an n-sided die once without keeping any state
func QuickRoll(n int, source random.Source) (int, error) {
	if n < 1 {
		return 0, ErrInvalidFaceCount
	}
	if source == nil {
		return 0, ErrNilSource
	}
	return source.Intn(n) + 1, nil
}

// AsOrdered returns the die as an Ordered die, or ErrNotOrdered when its
// faces were not built with an order.
func AsOrdered[T cmp.Ordered](die Die[T]) (Ordered[T], error) {
	if die == nil {
		return nil, ErrNilDie
	}
	ordered, ok := die.(Ordered[T])
	if !ok {
		return nil, ErrNotOrdered
	}
	return ordered, nil
}
