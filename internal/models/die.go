package models

import (
	"time"
)

// DieKind identifies how a die was built
type DieKind string

const (
	// DieKindTraditional is a fair die numbered 1 through Sides
	DieKindTraditional DieKind = "traditional"

	// DieKindFudge is a die with faces -1, 0 and +1
	DieKindFudge DieKind = "fudge"

	// DieKindMagical is a traditional die that holds charge
	DieKindMagical DieKind = "magical"

	// DieKindCustom is a fair die over caller supplied numeric faces
	DieKindCustom DieKind = "custom"

	// DieKindLabeled is a fair die over unordered string labels
	DieKindLabeled DieKind = "labeled"
)

// DieState is a snapshot of a die held by a table
type DieState struct {
	// ID is the unique identifier for the die
	ID string

	// Name is the caller supplied or catalog name of the die
	Name string

	// Notation is the die in dice notation, e.g. "d20" or "d6(2)"
	Notation string

	// Kind is how the die was built
	Kind DieKind

	// Faces are the die faces from worst to best, empty for labeled dice
	Faces []int

	// Labels are the faces of a labeled die in construction order
	Labels []string

	// BestRoll, WorstRoll and Mean are zero for labeled dice
	BestRoll  int
	WorstRoll int
	Mean      float64

	// Chargeable indicates the die accepts Empower and Dispel
	Chargeable bool

	// Charge is the remaining charge of a chargeable die
	Charge int

	// LastRoll or LastLabel is only meaningful when HasRolled is set
	LastRoll  int
	LastLabel string
	HasRolled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
