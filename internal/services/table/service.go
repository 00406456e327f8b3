package table

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/tabletoprandom/catalog"
	"github.com/KirkDiggler/tabletoprandom/internal/common/clock"
	"github.com/KirkDiggler/tabletoprandom/internal/common/uuid"
	"github.com/KirkDiggler/tabletoprandom/deck"
	"github.com/KirkDiggler/tabletoprandom/dice"
	"github.com/KirkDiggler/tabletoprandom/internal/models"
	"github.com/KirkDiggler/tabletoprandom/random"
)

// deckEntry guards one deck. Mutators hold mu for writing.
type deckEntry struct {
	mu sync.RWMutex

	id     string
	name   string
	deck   *deck.Deck[string]
	strict bool

	createdAt time.Time
	updatedAt time.Time
}

// dieEntry guards one die. Rolling changes the last roll and charge, so it
// holds mu for writing. Exactly one of die and labeled is set.
type dieEntry struct {
	mu sync.RWMutex

	id      string
	name    string
	kind    models.DieKind
	die     dice.Ordered[int]
	labeled *dice.FairDie[string]

	// charged is set when the die accepts Empower and Dispel
	charged dice.Chargeable

	createdAt time.Time
	updatedAt time.Time
}

// service implements the Service interface
type service struct {
	mu      sync.RWMutex
	decks   map[string]*deckEntry
	dice    map[string]*dieEntry
	catalog *catalog.Catalog

	// seeds derives a private source for every die and deck
	seeds *random.Rand

	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        zerolog.Logger
}

// New creates a new table service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &service{
		decks:         make(map[string]*deckEntry),
		dice:          make(map[string]*dieEntry),
		seeds:         random.New(&random.Config{Seed: cfg.Seed}),
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logger,
	}, nil
}

// CreateDeck builds a deck from cards or a catalog definition
func (s *service) CreateDeck(ctx context.Context, input *CreateDeckInput) (*CreateDeckOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := input.Name
	strict := input.StrictReturns
	source := s.nextSource()

	var built *deck.Deck[string]
	if input.CatalogDeck != "" {
		def, err := s.catalogDeck(input.CatalogDeck)
		if err != nil {
			return nil, err
		}
		built = def.Build(source)
		strict = def.StrictReturns
		if name == "" {
			name = def.Name
		}
	} else {
		built = deck.New(input.Cards, &deck.Config{
			Source:        source,
			StrictReturns: strict,
		})
		if input.Shuffle {
			built.Shuffle()
		}
	}

	now := s.clock.Now()
	entry := &deckEntry{
		id:        s.uuidGenerator.NewUUID(),
		name:      name,
		deck:      built,
		strict:    strict,
		createdAt: now,
		updatedAt: now,
	}
	state := entry.state()

	s.mu.Lock()
	s.decks[entry.id] = entry
	s.mu.Unlock()

	s.logger.Info().
		Str("deck_id", entry.id).
		Str("name", name).
		Int("count", built.Len()).
		Msg("created deck")

	return &CreateDeckOutput{
		Deck: state,
	}, nil
}

// CreateDie builds a die from a kind or a catalog definition
func (s *service) CreateDie(ctx context.Context, input *CreateDieInput) (*CreateDieOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := s.nextSource()

	var (
		entry *dieEntry
		err   error
	)
	if input.CatalogDie != "" {
		def, lookupErr := s.catalogDie(input.CatalogDie)
		if lookupErr != nil {
			return nil, lookupErr
		}
		entry, err = catalogDieEntry(def, source)
	} else {
		entry, err = buildDieEntry(input, source)
	}
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		entry.name = input.Name
	}
	if entry.name == "" {
		entry.name = entry.notation()
	}
	name := entry.name
	kind := entry.kind

	now := s.clock.Now()
	entry.id = s.uuidGenerator.NewUUID()
	entry.createdAt = now
	entry.updatedAt = now
	state := entry.state()

	s.mu.Lock()
	s.dice[entry.id] = entry
	s.mu.Unlock()

	s.logger.Info().
		Str("die_id", entry.id).
		Str("name", name).
		Str("kind", string(kind)).
		Msg("created die")

	return &CreateDieOutput{
		Die: state,
	}, nil
}

// LoadCatalog replaces the catalog used by CatalogDeck and CatalogDie
func (s *service) LoadCatalog(ctx context.Context, input *LoadCatalogInput) (*LoadCatalogOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		c   *catalog.Catalog
		err error
	)
	if input.Data != nil {
		c, err = catalog.Parse(input.Data)
	} else {
		c, err = catalog.Load(input.Path)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()

	output := &LoadCatalogOutput{
		Decks: make([]string, 0, len(c.Decks)),
		Dice:  make([]string, 0, len(c.Dice)),
	}
	for _, def := range c.Decks {
		output.Decks = append(output.Decks, def.Name)
	}
	for _, def := range c.Dice {
		output.Dice = append(output.Dice, def.Name)
	}

	s.logger.Info().
		Strs("decks", output.Decks).
		Strs("dice", output.Dice).
		Msg("loaded catalog")

	return output, nil
}

// GetDeck returns a snapshot of a deck
func (s *service) GetDeck(ctx context.Context, input *GetDeckInput) (*GetDeckOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	entry, err := s.getDeck(ctx, input.DeckID)
	if err != nil {
		return nil, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	return &GetDeckOutput{
		Deck: entry.state(),
	}, nil
}

// GetDie returns a snapshot of a die
func (s *service) GetDie(ctx context.Context, input *GetDieInput) (*GetDieOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	entry, err := s.getDie(ctx, input.DieID)
	if err != nil {
		return nil, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	return &GetDieOutput{
		Die: entry.state(),
	}, nil
}

// Draw draws one card, several cards, or one card with replacement
func (s *service) Draw(ctx context.Context, input *DrawInput) (*DrawOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Count < 0 {
		return nil, ErrInvalidCount
	}
	entry, err := s.getDeck(ctx, input.DeckID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	var cards []string
	exhausted := false

	switch {
	case input.WithReplacement:
		cards = make([]string, 0, max(1, input.Count))
		for i := 0; i < max(1, input.Count); i++ {
			card, err := entry.deck.DrawAndReplace()
			if err != nil {
				if input.Count == 0 {
					s.logExhausted(entry.id, err)
					return nil, err
				}
				exhausted = true
				break
			}
			cards = append(cards, card)
		}
	case input.Count == 0:
		card, err := entry.deck.Draw()
		if err != nil {
			s.logExhausted(entry.id, err)
			return nil, err
		}
		cards = []string{card}
	default:
		cards = entry.deck.Draws(input.Count)
		exhausted = len(cards) < input.Count
	}

	entry.updatedAt = s.clock.Now()

	s.logger.Debug().
		Str("deck_id", entry.id).
		Int("count", len(cards)).
		Bool("exhausted", exhausted).
		Msg("drew cards")

	return &DrawOutput{
		Cards:     cards,
		Exhausted: exhausted,
		Deck:      entry.state(),
	}, nil
}

// Peek shows the next cards without drawing them
func (s *service) Peek(ctx context.Context, input *PeekInput) (*PeekOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	entry, err := s.getDeck(ctx, input.DeckID)
	if err != nil {
		return nil, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	return &PeekOutput{
		Cards: entry.deck.Peek(input.Count),
	}, nil
}

// Shuffle randomizes the undrawn cards of a deck
func (s *service) Shuffle(ctx context.Context, input *ShuffleInput) (*ShuffleOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	entry, err := s.getDeck(ctx, input.DeckID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.deck.Shuffle()
	entry.updatedAt = s.clock.Now()

	s.logger.Debug().
		Str("deck_id", entry.id).
		Int("count", entry.deck.Len()).
		Msg("shuffled deck")

	return &ShuffleOutput{
		Deck: entry.state(),
	}, nil
}

// ReturnCards puts cards back on the top or bottom of a deck
func (s *service) ReturnCards(ctx context.Context, input *ReturnCardsInput) (*ReturnCardsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	entry, err := s.getDeck(ctx, input.DeckID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	pool, err := entry.deck.ReturnCards(input.Cards, input.PlaceTop)
	if err != nil {
		s.logger.Warn().
			Str("deck_id", entry.id).
			Err(err).
			Msg("rejected returned cards")
		return nil, err
	}
	entry.updatedAt = s.clock.Now()

	s.logger.Debug().
		Str("deck_id", entry.id).
		Int("count", len(input.Cards)).
		Bool("place_top", input.PlaceTop).
		Msg("returned cards")

	return &ReturnCardsOutput{
		Pool: pool,
		Deck: entry.state(),
	}, nil
}

// ReplaceAll puts every drawn card back at the bottom of a deck
func (s *service) ReplaceAll(ctx context.Context, input *ReplaceAllInput) (*ReplaceAllOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	entry, err := s.getDeck(ctx, input.DeckID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	pool := entry.deck.ReplaceAll()
	entry.updatedAt = s.clock.Now()

	s.logger.Debug().
		Str("deck_id", entry.id).
		Int("count", entry.deck.Len()).
		Msg("replaced all cards")

	return &ReplaceAllOutput{
		Pool: pool,
		Deck: entry.state(),
	}, nil
}

// Roll rolls a die one or more times
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Count < 0 {
		return nil, dice.ErrNegativeRolls
	}
	entry, err := s.getDie(ctx, input.DieID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := s.clock.Now()
	count := max(1, input.Count)
	rolls := make([]*models.Roll, 0, count)
	for i := 0; i < count; i++ {
		rolls = append(rolls, entry.roll(now))
	}
	entry.updatedAt = now

	s.logger.Debug().
		Str("die_id", entry.id).
		Int("count", count).
		Msg("rolled die")

	return &RollOutput{
		Rolls: rolls,
		Die:   entry.state(),
	}, nil
}

// Empower adds charge to a magical die
func (s *service) Empower(ctx context.Context, input *EmpowerInput) (*EmpowerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	entry, err := s.getDie(ctx, input.DieID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.charged == nil {
		return nil, ErrNotCharged
	}

	charge, err := entry.charged.Empower(input.Charge)
	if err != nil {
		return nil, err
	}
	entry.updatedAt = s.clock.Now()

	s.logger.Debug().
		Str("die_id", entry.id).
		Int("charge", charge).
		Msg("empowered die")

	return &EmpowerOutput{
		Charge: charge,
		Die:    entry.state(),
	}, nil
}

// Dispel clears the charge of a magical die
func (s *service) Dispel(ctx context.Context, input *DispelInput) (*DispelOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	entry, err := s.getDie(ctx, input.DieID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.charged == nil {
		return nil, ErrNotCharged
	}

	entry.charged.Dispel()
	entry.updatedAt = s.clock.Now()

	s.logger.Debug().
		Str("die_id", entry.id).
		Msg("dispelled die")

	return &DispelOutput{
		Die: entry.state(),
	}, nil
}

// Remove discards a deck or die
func (s *service) Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.decks[input.ID]; ok {
		delete(s.decks, input.ID)
		s.logger.Info().Str("deck_id", input.ID).Msg("removed deck")
		return &RemoveOutput{Success: true}, nil
	}
	if _, ok := s.dice[input.ID]; ok {
		delete(s.dice, input.ID)
		s.logger.Info().Str("die_id", input.ID).Msg("removed die")
		return &RemoveOutput{Success: true}, nil
	}

	return nil, ErrNotFound
}

func (s *service) getDeck(ctx context.Context, id string) (*deckEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.decks[id]
	if !ok {
		return nil, ErrDeckNotFound
	}
	return entry, nil
}

func (s *service) getDie(ctx context.Context, id string) (*dieEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.dice[id]
	if !ok {
		return nil, ErrDieNotFound
	}
	return entry, nil
}

func (s *service) catalogDeck(name string) (catalog.DeckDefinition, error) {
	s.mu.RLock()
	c := s.catalog
	s.mu.RUnlock()

	if c == nil {
		return catalog.DeckDefinition{}, ErrNoCatalog
	}
	return c.Deck(name)
}

func (s *service) catalogDie(name string) (catalog.DieDefinition, error) {
	s.mu.RLock()
	c := s.catalog
	s.mu.RUnlock()

	if c == nil {
		return catalog.DieDefinition{}, ErrNoCatalog
	}
	return c.Die(name)
}

// nextSource hands out a source no other die or deck shares
func (s *service) nextSource() random.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeds.Derive()
}

func (s *service) logExhausted(deckID string, err error) {
	s.logger.Warn().
		Str("deck_id", deckID).
		Err(err).
		Msg("draw failed")
}

func buildDieEntry(input *CreateDieInput, source random.Source) (*dieEntry, error) {
	if input.Kind == models.DieKindLabeled {
		labeled, err := dice.NewFair(input.Labels, source)
		if err != nil {
			return nil, err
		}
		return &dieEntry{kind: models.DieKindLabeled, labeled: labeled}, nil
	}

	die, err := buildDie(input, source)
	if err != nil {
		return nil, err
	}
	return newNumericEntry(input.Kind, die), nil
}

func catalogDieEntry(def catalog.DieDefinition, source random.Source) (*dieEntry, error) {
	if def.Labeled() {
		labeled, err := def.BuildLabeled(source)
		if err != nil {
			return nil, err
		}
		return &dieEntry{name: def.Name, kind: models.DieKindLabeled, labeled: labeled}, nil
	}

	die, err := def.BuildNumeric(source)
	if err != nil {
		return nil, err
	}
	entry := newNumericEntry(catalogKind(def), die)
	entry.name = def.Name
	return entry, nil
}

func newNumericEntry(kind models.DieKind, die dice.Ordered[int]) *dieEntry {
	entry := &dieEntry{kind: kind, die: die}
	if charged, ok := die.(dice.Chargeable); ok {
		entry.charged = charged
	}
	return entry
}

func buildDie(input *CreateDieInput, source random.Source) (dice.Ordered[int], error) {
	switch input.Kind {
	case models.DieKindTraditional:
		return dice.NewTraditional(input.Sides, source)
	case models.DieKindFudge:
		return dice.NewFudge(source)
	case models.DieKindMagical:
		return dice.NewMagical(input.Sides, input.Charge, source)
	case models.DieKindCustom:
		return dice.NewNumeric(input.Faces, source)
	default:
		return nil, ErrInvalidDieKind
	}
}

func catalogKind(def catalog.DieDefinition) models.DieKind {
	switch {
	case def.Charge > 0:
		return models.DieKindMagical
	case def.Sides != 0:
		return models.DieKindTraditional
	default:
		return models.DieKindCustom
	}
}

// state snapshots the deck, the caller holds mu
func (e *deckEntry) state() *models.DeckState {
	last, ok := e.deck.LastDraw()
	return &models.DeckState{
		ID:            e.id,
		Name:          e.name,
		Remaining:     e.deck.Len(),
		Pool:          e.deck.Pool(),
		Drawn:         e.deck.Drawn(),
		LastDraw:      last,
		HasDrawn:      ok,
		StrictReturns: e.strict,
		CreatedAt:     e.createdAt,
		UpdatedAt:     e.updatedAt,
	}
}

func (e *dieEntry) notation() string {
	if e.labeled != nil {
		return e.labeled.String()
	}
	return e.die.String()
}

// roll rolls once, the caller holds mu for writing
func (e *dieEntry) roll(now time.Time) *models.Roll {
	roll := &models.Roll{
		DieID:     e.id,
		Timestamp: now,
	}
	if e.labeled != nil {
		roll.Label = e.labeled.Roll()
		return roll
	}

	roll.Charged = e.charged != nil && e.charged.Charge() > 0
	roll.Value = e.die.Roll()
	return roll
}

// state snapshots the die, the caller holds mu
func (e *dieEntry) state() *models.DieState {
	if e.labeled != nil {
		last, ok := e.labeled.LastRoll()
		return &models.DieState{
			ID:        e.id,
			Name:      e.name,
			Notation:  e.labeled.String(),
			Kind:      e.kind,
			Labels:    e.labeled.Faces(),
			LastLabel: last,
			HasRolled: ok,
			CreatedAt: e.createdAt,
			UpdatedAt: e.updatedAt,
		}
	}

	last, ok := e.die.LastRoll()
	state := &models.DieState{
		ID:        e.id,
		Name:      e.name,
		Notation:  e.die.String(),
		Kind:      e.kind,
		Faces:     e.die.FaceOrder(),
		BestRoll:  e.die.BestRoll(),
		WorstRoll: e.die.WorstRoll(),
		Mean:      dice.MeanOf[int](e.die),
		LastRoll:  last,
		HasRolled: ok,
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
	}
	if e.charged != nil {
		state.Chargeable = true
		state.Charge = e.charged.Charge()
	}
	return state
}
