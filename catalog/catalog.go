// Package catalog reads deck and dice definitions written by game designers.
//
// A catalog is plain YAML:
//
//	decks:
//	  - name: omens
//	    shuffle: true
//	    cards:
//	      - { name: crow, copies: 2 }
//	dice:
//	  - { name: d6, sides: 6 }
//	  - { name: fate, faces: [-1, 0, 1] }
//	  - { name: lucky-d20, sides: 20, charge: 2 }
//	  - { name: element, labels: [fire, water, air, earth] }
//
// Card names and labels are opaque to this package.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/tabletoprandom/deck"
	"github.com/KirkDiggler/tabletoprandom/dice"
	"github.com/KirkDiggler/tabletoprandom/random"
)

// Catalog is a set of named deck and die definitions
type Catalog struct {
	Decks []DeckDefinition `yaml:"decks"`
	Dice  []DieDefinition  `yaml:"dice"`
}

// DeckDefinition describes the starting contents of a deck
type DeckDefinition struct {
	Name string `yaml:"name"`

	// Entries are expanded in document order to build the deck
	Entries []CardDefinition `yaml:"cards"`

	// Shuffle the deck once after building it
	Shuffle bool `yaml:"shuffle"`

	// StrictReturns maps to deck.Config.StrictReturns
	StrictReturns bool `yaml:"strict_returns"`
}

// CardDefinition is a card name and how many copies of it the deck holds
type CardDefinition struct {
	Name string `yaml:"name"`

	// Copies defaults to 1 when omitted
	Copies int `yaml:"copies"`
}

// DieDefinition describes a die by side count, numeric faces or labels
type DieDefinition struct {
	Name   string   `yaml:"name"`
	Sides  int      `yaml:"sides"`
	Faces  []int    `yaml:"faces"`
	Labels []string `yaml:"labels"`
	Charge int      `yaml:"charge"`
}

// Load reads and validates a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks every definition and the uniqueness of names
func (c *Catalog) Validate() error {
	deckNames := make(map[string]struct{}, len(c.Decks))
	for _, def := range c.Decks {
		if err := def.Validate(); err != nil {
			return err
		}
		if _, ok := deckNames[def.Name]; ok {
			return fmt.Errorf("deck %q: %w", def.Name, ErrDuplicateName)
		}
		deckNames[def.Name] = struct{}{}
	}

	dieNames := make(map[string]struct{}, len(c.Dice))
	for _, def := range c.Dice {
		if err := def.Validate(); err != nil {
			return err
		}
		if _, ok := dieNames[def.Name]; ok {
			return fmt.Errorf("die %q: %w", def.Name, ErrDuplicateName)
		}
		dieNames[def.Name] = struct{}{}
	}

	return nil
}

// Deck finds a deck definition by name
func (c *Catalog) Deck(name string) (DeckDefinition, error) {
	for _, def := range c.Decks {
		if def.Name == name {
			return def, nil
		}
	}
	return DeckDefinition{}, fmt.Errorf("deck %q: %w", name, ErrDeckNotDefined)
}

// Die finds a die definition by name
func (c *Catalog) Die(name string) (DieDefinition, error) {
	for _, def := range c.Dice {
		if def.Name == name {
			return def, nil
		}
	}
	return DieDefinition{}, fmt.Errorf("die %q: %w", name, ErrDieNotDefined)
}

// Validate checks a single deck definition. An empty deck is valid.
func (d DeckDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("deck: %w", ErrEmptyName)
	}
	for _, entry := range d.Entries {
		if entry.Name == "" {
			return fmt.Errorf("deck %q: %w", d.Name, ErrEmptyCardName)
		}
		if entry.Copies < 0 {
			return fmt.Errorf("deck %q card %q: %w", d.Name, entry.Name, ErrInvalidCopies)
		}
	}
	return nil
}

// Cards expands the entries into the deck's starting order
func (d DeckDefinition) Cards() []string {
	var cards []string
	for _, entry := range d.Entries {
		copies := entry.Copies
		if copies == 0 {
			copies = 1
		}
		for i := 0; i < copies; i++ {
			cards = append(cards, entry.Name)
		}
	}
	return cards
}

// Build creates the deck, shuffled with source when the definition asks for it
func (d DeckDefinition) Build(source random.Source) *deck.Deck[string] {
	built := deck.New(d.Cards(), &deck.Config{
		Source:        source,
		StrictReturns: d.StrictReturns,
	})
	if d.Shuffle {
		built.Shuffle()
	}
	return built
}

// Validate checks a single die definition
func (d DieDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("die: %w", ErrEmptyName)
	}

	set := 0
	if d.Sides != 0 {
		set++
	}
	if len(d.Faces) > 0 {
		set++
	}
	if len(d.Labels) > 0 {
		set++
	}
	if set != 1 {
		return fmt.Errorf("die %q: %w", d.Name, ErrAmbiguousDie)
	}

	if d.Sides < 0 {
		return fmt.Errorf("die %q: %w", d.Name, ErrInvalidSides)
	}
	if d.Charge < 0 {
		return fmt.Errorf("die %q: %w", d.Name, ErrNegativeCharge)
	}
	if len(d.Labels) > 0 && d.Charge > 0 {
		return fmt.Errorf("die %q: %w", d.Name, ErrChargedLabels)
	}
	return nil
}

// Labeled reports whether the die faces are labels rather than numbers
func (d DieDefinition) Labeled() bool {
	return len(d.Labels) > 0
}

// BuildNumeric creates a numeric die, wrapped in a charged die when the
// definition holds charge. Labeled definitions have no order and return
// dice.ErrNotOrdered.
func (d DieDefinition) BuildNumeric(source random.Source) (dice.Ordered[int], error) {
	if d.Labeled() {
		return nil, fmt.Errorf("die %q: %w", d.Name, dice.ErrNotOrdered)
	}

	var (
		die dice.Ordered[int]
		err error
	)
	if d.Sides != 0 {
		die, err = dice.NewTraditional(d.Sides, source)
	} else {
		die, err = dice.NewNumeric(d.Faces, source)
	}
	if err != nil {
		return nil, fmt.Errorf("die %q: %w", d.Name, err)
	}

	if d.Charge == 0 {
		return die, nil
	}

	charged, err := dice.NewNumericCharged(die, d.Charge)
	if err != nil {
		return nil, fmt.Errorf("die %q: %w", d.Name, err)
	}
	return charged, nil
}

// BuildLabeled creates a fair die over the definition's labels
func (d DieDefinition) BuildLabeled(source random.Source) (*dice.FairDie[string], error) {
	if !d.Labeled() {
		return nil, fmt.Errorf("die %q: %w", d.Name, ErrNoLabels)
	}

	die, err := dice.NewFair(d.Labels, source)
	if err != nil {
		return nil, fmt.Errorf("die %q: %w", d.Name, err)
	}
	return die, nil
}
