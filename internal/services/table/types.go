package table

import (
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/tabletoprandom/internal/common/clock"
	"github.com/KirkDiggler/tabletoprandom/internal/common/uuid"
	"github.com/KirkDiggler/tabletoprandom/internal/models"
)

// Config holds configuration for the table service
type Config struct {
	// Seed for the sources handed to new dice and decks, zero seeds from the clock
	Seed int64

	// Optional logger, discards output when nil
	Logger *zerolog.Logger

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CreateDeckInput contains parameters for creating a deck
type CreateDeckInput struct {
	// Name is a display name for the deck
	Name string

	// Cards are the starting cards, front first
	Cards []string

	// Shuffle the cards once after creating the deck
	Shuffle bool

	// StrictReturns rejects returning cards the deck did not deal
	StrictReturns bool

	// CatalogDeck builds the deck from the loaded catalog instead of Cards
	CatalogDeck string
}

// CreateDeckOutput contains the result of creating a deck
type CreateDeckOutput struct {
	Deck *models.DeckState
}

// CreateDieInput contains parameters for creating a die
type CreateDieInput struct {
	// Name is a display name for the die, defaults to its notation
	Name string

	// Kind selects how the die is built
	Kind models.DieKind

	// Sides for traditional and magical dice
	Sides int

	// Faces for custom dice
	Faces []int

	// Labels for labeled dice
	Labels []string

	// Charge is the starting charge of a magical die
	Charge int

	// CatalogDie builds the die from the loaded catalog instead of Kind
	CatalogDie string
}

// CreateDieOutput contains the result of creating a die
type CreateDieOutput struct {
	Die *models.DieState
}

// LoadCatalogInput contains the catalog document to load.
// Data takes precedence over Path.
type LoadCatalogInput struct {
	Path string
	Data []byte
}

// LoadCatalogOutput lists the definitions that were loaded
type LoadCatalogOutput struct {
	Decks []string
	Dice  []string
}

// GetDeckInput identifies a deck
type GetDeckInput struct {
	DeckID string
}

// GetDeckOutput contains a deck snapshot
type GetDeckOutput struct {
	Deck *models.DeckState
}

// GetDieInput identifies a die
type GetDieInput struct {
	DieID string
}

// GetDieOutput contains a die snapshot
type GetDieOutput struct {
	Die *models.DieState
}

// DrawInput contains parameters for drawing cards
type DrawInput struct {
	DeckID string

	// Count of zero draws a single card and fails with deck.ErrExhausted on
	// an empty deck. A positive Count draws up to Count cards and stops early
	// when the deck runs out.
	Count int

	// WithReplacement returns every drawn card to the bottom. Count applies
	// the same way as without replacement.
	WithReplacement bool
}

// DrawOutput contains the drawn cards
type DrawOutput struct {
	Cards []string

	// Exhausted indicates fewer cards were drawn than requested
	Exhausted bool

	Deck *models.DeckState
}

// PeekInput contains parameters for peeking at a deck
type PeekInput struct {
	DeckID string
	Count  int
}

// PeekOutput contains the next cards in draw order
type PeekOutput struct {
	Cards []string
}

// ShuffleInput identifies the deck to shuffle
type ShuffleInput struct {
	DeckID string
}

// ShuffleOutput contains the shuffled deck
type ShuffleOutput struct {
	Deck *models.DeckState
}

// ReturnCardsInput contains the cards to return to a deck
type ReturnCardsInput struct {
	DeckID string

	// Cards keep their order when returned
	Cards []string

	// PlaceTop returns the cards to the front of the deck
	PlaceTop bool
}

// ReturnCardsOutput contains the resulting deck
type ReturnCardsOutput struct {
	Pool map[string]int
	Deck *models.DeckState
}

// ReplaceAllInput identifies the deck to replace all drawn cards in
type ReplaceAllInput struct {
	DeckID string
}

// ReplaceAllOutput contains the resulting deck
type ReplaceAllOutput struct {
	Pool map[string]int
	Deck *models.DeckState
}

// RollInput contains parameters for rolling a die
type RollInput struct {
	DieID string

	// Count of rolls, zero rolls once
	Count int
}

// RollOutput contains the rolls in order
type RollOutput struct {
	Rolls []*models.Roll
	Die   *models.DieState
}

// EmpowerInput contains the charge to add to a die
type EmpowerInput struct {
	DieID  string
	Charge int
}

// EmpowerOutput contains the new charge
type EmpowerOutput struct {
	Charge int
	Die    *models.DieState
}

// DispelInput identifies the die to dispel
type DispelInput struct {
	DieID string
}

// DispelOutput contains the dispelled die
type DispelOutput struct {
	Die *models.DieState
}

// RemoveInput identifies a deck or die
type RemoveInput struct {
	ID string
}

// RemoveOutput contains the result of removing a deck or die
type RemoveOutput struct {
	Success bool
}
