package models

import (
	"time"
)

// Roll represents a single roll of a die held by a table
type Roll struct {
	// DieID is the ID of the die that was rolled
	DieID string

	// Value is the face a numeric die landed on
	Value int

	// Label is the face a labeled die landed on
	Label string

	// Charged indicates the roll spent a charge and landed on the best face
	Charged bool

	// Timestamp is when the roll was made
	Timestamp time.Time
}
