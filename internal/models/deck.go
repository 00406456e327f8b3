package models

import (
	"time"
)

// DeckState is a snapshot of a deck held by a table
type DeckState struct {
	// ID is the unique identifier for the deck
	ID string

	// Name is the caller supplied or catalog name of the deck
	Name string

	// Remaining is the number of undrawn cards
	Remaining int

	// Pool counts the undrawn cards
	Pool map[string]int

	// Drawn counts the drawn cards
	Drawn map[string]int

	// LastDraw is only meaningful when HasDrawn is set
	LastDraw string
	HasDrawn bool

	// StrictReturns indicates the deck rejects returning cards it did not deal
	StrictReturns bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
