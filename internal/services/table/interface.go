package table

import "context"

// Service holds dice and decks shared by many callers.
// Operations on one die or deck never interleave, reads may run together.
type Service interface {
	// CreateDeck builds a deck from cards or a catalog definition
	CreateDeck(ctx context.Context, input *CreateDeckInput) (*CreateDeckOutput, error)

	// CreateDie builds a die from a kind or a catalog definition
	CreateDie(ctx context.Context, input *CreateDieInput) (*CreateDieOutput, error)

	// LoadCatalog replaces the catalog used by CatalogDeck and CatalogDie
	LoadCatalog(ctx context.Context, input *LoadCatalogInput) (*LoadCatalogOutput, error)

	// GetDeck returns a snapshot of a deck
	GetDeck(ctx context.Context, input *GetDeckInput) (*GetDeckOutput, error)

	// GetDie returns a snapshot of a die
	GetDie(ctx context.Context, input *GetDieInput) (*GetDieOutput, error)

	// Draw draws one card, several cards, or one card with replacement
	Draw(ctx context.Context, input *DrawInput) (*DrawOutput, error)

	// Peek shows the next cards without drawing them
	Peek(ctx context.Context, input *PeekInput) (*PeekOutput, error)

	// Shuffle randomizes the undrawn cards of a deck
	Shuffle(ctx context.Context, input *ShuffleInput) (*ShuffleOutput, error)

	// ReturnCards puts cards back on the top or bottom of a deck
	ReturnCards(ctx context.Context, input *ReturnCardsInput) (*ReturnCardsOutput, error)

	// ReplaceAll puts every drawn card back at the bottom of a deck
	ReplaceAll(ctx context.Context, input *ReplaceAllInput) (*ReplaceAllOutput, error)

	// Roll rolls a die one or more times
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// Empower adds charge to a magical die
	Empower(ctx context.Context, input *EmpowerInput) (*EmpowerOutput, error)

	// Dispel clears the charge of a magical die
	Dispel(ctx context.Context, input *DispelInput) (*DispelOutput, error)

	// Remove discards a deck or die
	Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error)
}
