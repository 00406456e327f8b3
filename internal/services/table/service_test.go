package table

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/tabletoprandom/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/tabletoprandom/internal/common/uuid/mocks"
	"github.com/KirkDiggler/tabletoprandom/deck"
	"github.com/KirkDiggler/tabletoprandom/dice"
	"github.com/KirkDiggler/tabletoprandom/internal/models"
)

const testCatalog = `
decks:
  - name: omens
    strict_returns: true
    cards:
      - { name: crow }
      - { name: moon, copies: 2 }
dice:
  - { name: lucky-d20, sides: 20, charge: 1 }
  - { name: fate, faces: [-1, 0, 1] }
  - { name: element, labels: [fire, water] }
`

type TableServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	logs      *bytes.Buffer
	service   Service
	ctx       context.Context

	testTime   time.Time
	testDeckID string
	testDieID  string
}

func (s *TableServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testDeckID = "test-deck-id"
	s.testDieID = "test-die-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.logs = &bytes.Buffer{}
	logger := zerolog.New(s.logs).Level(zerolog.DebugLevel)

	svc, err := New(&Config{
		Seed:          1,
		Logger:        &logger,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *TableServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TableServiceTestSuite))
}

func (s *TableServiceTestSuite) createDeck(cards ...string) *models.DeckState {
	s.mockUUID.EXPECT().NewUUID().Return(s.testDeckID)

	output, err := s.service.CreateDeck(s.ctx, &CreateDeckInput{
		Name:  "test-deck",
		Cards: cards,
	})
	s.Require().NoError(err)
	return output.Deck
}

func (s *TableServiceTestSuite) createDie(input *CreateDieInput) *models.DieState {
	s.mockUUID.EXPECT().NewUUID().Return(s.testDieID)

	output, err := s.service.CreateDie(s.ctx, input)
	s.Require().NoError(err)
	return output.Die
}

func (s *TableServiceTestSuite) loadCatalog() {
	_, err := s.service.LoadCatalog(s.ctx, &LoadCatalogInput{Data: []byte(testCatalog)})
	s.Require().NoError(err)
}

func (s *TableServiceTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUIDGenerator)

	svc, err := New(&Config{Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.Require().NoError(err)
	s.NotNil(svc)
}

func (s *TableServiceTestSuite) TestCreateDeck() {
	state := s.createDeck("A", "B", "C")

	s.Equal(s.testDeckID, state.ID)
	s.Equal("test-deck", state.Name)
	s.Equal(3, state.Remaining)
	s.Equal(map[string]int{"A": 1, "B": 1, "C": 1}, state.Pool)
	s.Empty(state.Drawn)
	s.False(state.HasDrawn)
	s.Equal(s.testTime, state.CreatedAt)
	s.Contains(s.logs.String(), "created deck")
}

func (s *TableServiceTestSuite) TestCreateDeck_NilInput() {
	_, err := s.service.CreateDeck(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
}

func (s *TableServiceTestSuite) TestCreateDeck_CancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.service.CreateDeck(ctx, &CreateDeckInput{Cards: []string{"A"}})
	s.ErrorIs(err, context.Canceled)
}

func (s *TableServiceTestSuite) TestDrawAndReturn() {
	s.createDeck("A", "B", "C")

	drawOutput, err := s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID})
	s.Require().NoError(err)
	s.Equal([]string{"A"}, drawOutput.Cards)
	s.False(drawOutput.Exhausted)
	s.Equal(map[string]int{"A": 1}, drawOutput.Deck.Drawn)
	s.Equal("A", drawOutput.Deck.LastDraw)
	s.True(drawOutput.Deck.HasDrawn)

	returnOutput, err := s.service.ReturnCards(s.ctx, &ReturnCardsInput{
		DeckID: s.testDeckID,
		Cards:  []string{"A"},
	})
	s.Require().NoError(err)
	s.Equal(map[string]int{"A": 1, "B": 1, "C": 1}, returnOutput.Pool)
	s.Empty(returnOutput.Deck.Drawn)

	peekOutput, err := s.service.Peek(s.ctx, &PeekInput{DeckID: s.testDeckID, Count: 3})
	s.Require().NoError(err)
	s.Equal([]string{"B", "C", "A"}, peekOutput.Cards)
}

func (s *TableServiceTestSuite) TestDraw_Exhausted() {
	s.createDeck("A")

	_, err := s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID})
	s.Require().NoError(err)

	_, err = s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID})
	s.ErrorIs(err, deck.ErrExhausted)
	s.Contains(s.logs.String(), "draw failed")
}

func (s *TableServiceTestSuite) TestDraw_CountTruncates() {
	s.createDeck("A", "B")

	output, err := s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID, Count: 5})
	s.Require().NoError(err)
	s.Equal([]string{"A", "B"}, output.Cards)
	s.True(output.Exhausted)
	s.Equal(0, output.Deck.Remaining)

	output, err = s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID, Count: 2})
	s.Require().NoError(err)
	s.Empty(output.Cards)
	s.True(output.Exhausted)
}

func (s *TableServiceTestSuite) TestDraw_NegativeCount() {
	s.createDeck("A")

	_, err := s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID, Count: -1})
	s.ErrorIs(err, ErrInvalidCount)
}

func (s *TableServiceTestSuite) TestDraw_WithReplacement() {
	s.createDeck("A", "B")

	output, err := s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID, WithReplacement: true})
	s.Require().NoError(err)
	s.Equal([]string{"A"}, output.Cards)
	s.Equal(2, output.Deck.Remaining)
	s.Empty(output.Deck.Drawn)

	peekOutput, err := s.service.Peek(s.ctx, &PeekInput{DeckID: s.testDeckID, Count: 2})
	s.Require().NoError(err)
	s.Equal([]string{"B", "A"}, peekOutput.Cards)
}

func (s *TableServiceTestSuite) TestDraw_WithReplacementCount() {
	s.createDeck("A", "B")

	output, err := s.service.Draw(s.ctx, &DrawInput{
		DeckID:          s.testDeckID,
		Count:           3,
		WithReplacement: true,
	})
	s.Require().NoError(err)
	s.Equal([]string{"A", "B", "A"}, output.Cards)
	s.False(output.Exhausted)
	s.Equal(2, output.Deck.Remaining)
	s.Empty(output.Deck.Drawn)
}

func (s *TableServiceTestSuite) TestDraw_WithReplacementEmptyDeck() {
	s.createDeck()

	output, err := s.service.Draw(s.ctx, &DrawInput{
		DeckID:          s.testDeckID,
		Count:           2,
		WithReplacement: true,
	})
	s.Require().NoError(err)
	s.Empty(output.Cards)
	s.True(output.Exhausted)

	_, err = s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID, WithReplacement: true})
	s.ErrorIs(err, deck.ErrExhausted)
}

func (s *TableServiceTestSuite) TestReturnCards_Top() {
	s.createDeck("A", "x", "y", "z")

	_, err := s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID, Count: 4})
	s.Require().NoError(err)
	_, err = s.service.ReturnCards(s.ctx, &ReturnCardsInput{DeckID: s.testDeckID, Cards: []string{"A"}})
	s.Require().NoError(err)

	_, err = s.service.ReturnCards(s.ctx, &ReturnCardsInput{
		DeckID:   s.testDeckID,
		Cards:    []string{"x", "y", "z"},
		PlaceTop: true,
	})
	s.Require().NoError(err)

	peekOutput, err := s.service.Peek(s.ctx, &PeekInput{DeckID: s.testDeckID, Count: 3})
	s.Require().NoError(err)
	s.Equal([]string{"x", "y", "z"}, peekOutput.Cards)
}

func (s *TableServiceTestSuite) TestReplaceAll() {
	s.createDeck("A", "A", "B")

	drawOutput, err := s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID, Count: 2})
	s.Require().NoError(err)
	s.Equal([]string{"A", "A"}, drawOutput.Cards)
	s.Equal(map[string]int{"A": 2}, drawOutput.Deck.Drawn)

	output, err := s.service.ReplaceAll(s.ctx, &ReplaceAllInput{DeckID: s.testDeckID})
	s.Require().NoError(err)
	s.Equal(map[string]int{"A": 2, "B": 1}, output.Pool)
	s.Empty(output.Deck.Drawn)

	peekOutput, err := s.service.Peek(s.ctx, &PeekInput{DeckID: s.testDeckID, Count: 1})
	s.Require().NoError(err)
	s.Equal([]string{"B"}, peekOutput.Cards)
}

func (s *TableServiceTestSuite) TestShuffle_KeepsCards() {
	cards := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		cards = append(cards, fmt.Sprintf("card-%d", i))
	}
	created := s.createDeck(cards...)

	output, err := s.service.Shuffle(s.ctx, &ShuffleInput{DeckID: s.testDeckID})
	s.Require().NoError(err)
	s.Equal(created.Pool, output.Deck.Pool)
	s.Empty(output.Deck.Drawn)
}

func (s *TableServiceTestSuite) TestDeckNotFound() {
	_, err := s.service.Draw(s.ctx, &DrawInput{DeckID: "missing"})
	s.ErrorIs(err, ErrDeckNotFound)

	_, err = s.service.Peek(s.ctx, &PeekInput{DeckID: "missing"})
	s.ErrorIs(err, ErrDeckNotFound)

	_, err = s.service.GetDeck(s.ctx, &GetDeckInput{DeckID: "missing"})
	s.ErrorIs(err, ErrDeckNotFound)
}

func (s *TableServiceTestSuite) TestCreateDie_Traditional() {
	state := s.createDie(&CreateDieInput{Kind: models.DieKindTraditional, Sides: 6})

	s.Equal(s.testDieID, state.ID)
	s.Equal("d6", state.Name)
	s.Equal("d6", state.Notation)
	s.Equal([]int{1, 2, 3, 4, 5, 6}, state.Faces)
	s.Equal(6, state.BestRoll)
	s.Equal(1, state.WorstRoll)
	s.InDelta(3.5, state.Mean, 1e-9)
	s.False(state.Chargeable)
	s.False(state.HasRolled)
}

func (s *TableServiceTestSuite) TestCreateDie_Invalid() {
	_, err := s.service.CreateDie(s.ctx, &CreateDieInput{Kind: models.DieKindTraditional, Sides: 0})
	s.ErrorIs(err, dice.ErrInvalidArgument)

	_, err = s.service.CreateDie(s.ctx, &CreateDieInput{Kind: models.DieKindMagical, Sides: 6, Charge: -1})
	s.ErrorIs(err, dice.ErrNegativeCharge)

	_, err = s.service.CreateDie(s.ctx, &CreateDieInput{Kind: "d7"})
	s.ErrorIs(err, ErrInvalidDieKind)

	_, err = s.service.CreateDie(s.ctx, &CreateDieInput{Kind: models.DieKindCustom})
	s.ErrorIs(err, dice.ErrInvalidFaceCount)
}

func (s *TableServiceTestSuite) TestCreateDie_Fudge() {
	state := s.createDie(&CreateDieInput{Kind: models.DieKindFudge})

	s.Equal("dF", state.Notation)
	s.Equal([]int{-1, 0, 1}, state.Faces)
	s.InDelta(0.0, state.Mean, 1e-9)
}

func (s *TableServiceTestSuite) TestRoll() {
	s.createDie(&CreateDieInput{Kind: models.DieKindTraditional, Sides: 20})

	output, err := s.service.Roll(s.ctx, &RollInput{DieID: s.testDieID, Count: 10})
	s.Require().NoError(err)
	s.Len(output.Rolls, 10)
	for _, roll := range output.Rolls {
		s.GreaterOrEqual(roll.Value, 1)
		s.LessOrEqual(roll.Value, 20)
		s.False(roll.Charged)
		s.Equal(s.testDieID, roll.DieID)
	}
	s.True(output.Die.HasRolled)
	s.Equal(output.Rolls[9].Value, output.Die.LastRoll)

	output, err = s.service.Roll(s.ctx, &RollInput{DieID: s.testDieID})
	s.Require().NoError(err)
	s.Len(output.Rolls, 1)

	_, err = s.service.Roll(s.ctx, &RollInput{DieID: s.testDieID, Count: -1})
	s.ErrorIs(err, dice.ErrNegativeRolls)
}

func (s *TableServiceTestSuite) TestRoll_Magical() {
	state := s.createDie(&CreateDieInput{Kind: models.DieKindMagical, Sides: 6, Charge: 2})
	s.True(state.Chargeable)
	s.Equal(2, state.Charge)
	s.Equal("d6(2)", state.Notation)

	output, err := s.service.Roll(s.ctx, &RollInput{DieID: s.testDieID, Count: 3})
	s.Require().NoError(err)

	s.Equal(6, output.Rolls[0].Value)
	s.True(output.Rolls[0].Charged)
	s.Equal(6, output.Rolls[1].Value)
	s.True(output.Rolls[1].Charged)
	s.False(output.Rolls[2].Charged)
	s.Equal(0, output.Die.Charge)
	s.InDelta(3.5, output.Die.Mean, 1e-9)
}

func (s *TableServiceTestSuite) TestEmpowerAndDispel() {
	s.createDie(&CreateDieInput{Kind: models.DieKindMagical, Sides: 8})

	empowerOutput, err := s.service.Empower(s.ctx, &EmpowerInput{DieID: s.testDieID, Charge: 3})
	s.Require().NoError(err)
	s.Equal(3, empowerOutput.Charge)
	s.Equal(3, empowerOutput.Die.Charge)

	_, err = s.service.Empower(s.ctx, &EmpowerInput{DieID: s.testDieID, Charge: -1})
	s.ErrorIs(err, dice.ErrNegativeCharge)

	dispelOutput, err := s.service.Dispel(s.ctx, &DispelInput{DieID: s.testDieID})
	s.Require().NoError(err)
	s.Equal(0, dispelOutput.Die.Charge)
}

func (s *TableServiceTestSuite) TestEmpower_NotCharged() {
	s.createDie(&CreateDieInput{Kind: models.DieKindTraditional, Sides: 6})

	_, err := s.service.Empower(s.ctx, &EmpowerInput{DieID: s.testDieID, Charge: 1})
	s.ErrorIs(err, ErrNotCharged)

	_, err = s.service.Dispel(s.ctx, &DispelInput{DieID: s.testDieID})
	s.ErrorIs(err, ErrNotCharged)
}

func (s *TableServiceTestSuite) TestDieNotFound() {
	_, err := s.service.Roll(s.ctx, &RollInput{DieID: "missing"})
	s.ErrorIs(err, ErrDieNotFound)

	_, err = s.service.GetDie(s.ctx, &GetDieInput{DieID: "missing"})
	s.ErrorIs(err, ErrDieNotFound)
}

func (s *TableServiceTestSuite) TestCatalog() {
	_, err := s.service.CreateDeck(s.ctx, &CreateDeckInput{CatalogDeck: "omens"})
	s.ErrorIs(err, ErrNoCatalog)

	output, err := s.service.LoadCatalog(s.ctx, &LoadCatalogInput{Data: []byte(testCatalog)})
	s.Require().NoError(err)
	s.Equal([]string{"omens"}, output.Decks)
	s.Equal([]string{"lucky-d20", "fate", "element"}, output.Dice)

	s.mockUUID.EXPECT().NewUUID().Return(s.testDeckID)
	deckOutput, err := s.service.CreateDeck(s.ctx, &CreateDeckInput{CatalogDeck: "omens"})
	s.Require().NoError(err)
	s.Equal("omens", deckOutput.Deck.Name)
	s.True(deckOutput.Deck.StrictReturns)
	s.Equal(map[string]int{"crow": 1, "moon": 2}, deckOutput.Deck.Pool)

	_, err = s.service.ReturnCards(s.ctx, &ReturnCardsInput{DeckID: s.testDeckID, Cards: []string{"sun"}})
	s.ErrorIs(err, deck.ErrForeignReturn)
	s.Contains(s.logs.String(), "rejected returned cards")
}

func (s *TableServiceTestSuite) TestCatalog_Dice() {
	s.loadCatalog()

	state := s.createDie(&CreateDieInput{CatalogDie: "lucky-d20"})
	s.Equal("lucky-d20", state.Name)
	s.Equal(models.DieKindMagical, state.Kind)
	s.True(state.Chargeable)
	s.Equal(1, state.Charge)

	_, err := s.service.CreateDie(s.ctx, &CreateDieInput{CatalogDie: "d100"})
	s.Error(err)
}

func (s *TableServiceTestSuite) TestCatalog_LabeledDie() {
	s.loadCatalog()

	state := s.createDie(&CreateDieInput{CatalogDie: "element"})
	s.Equal("element", state.Name)
	s.Equal(models.DieKindLabeled, state.Kind)
	s.Equal([]string{"fire", "water"}, state.Labels)
	s.Empty(state.Faces)
	s.False(state.Chargeable)

	output, err := s.service.Roll(s.ctx, &RollInput{DieID: s.testDieID, Count: 4})
	s.Require().NoError(err)
	for _, roll := range output.Rolls {
		s.Contains([]string{"fire", "water"}, roll.Label)
		s.False(roll.Charged)
	}
	s.Equal(output.Rolls[3].Label, output.Die.LastLabel)
}

func (s *TableServiceTestSuite) TestCreateDie_Labeled() {
	state := s.createDie(&CreateDieInput{
		Kind:   models.DieKindLabeled,
		Labels: []string{"crow", "moon", "crow", "sun"},
	})
	s.Equal("d(3)", state.Name)
	s.Equal([]string{"crow", "moon", "sun"}, state.Labels)

	_, err := s.service.Empower(s.ctx, &EmpowerInput{DieID: s.testDieID, Charge: 1})
	s.ErrorIs(err, ErrNotCharged)

	_, err = s.service.CreateDie(s.ctx, &CreateDieInput{Kind: models.DieKindLabeled})
	s.ErrorIs(err, dice.ErrInvalidFaceCount)
}

func (s *TableServiceTestSuite) TestRemove() {
	s.createDeck("A")
	s.createDie(&CreateDieInput{Kind: models.DieKindFudge})

	output, err := s.service.Remove(s.ctx, &RemoveInput{ID: s.testDeckID})
	s.Require().NoError(err)
	s.True(output.Success)

	output, err = s.service.Remove(s.ctx, &RemoveInput{ID: s.testDieID})
	s.Require().NoError(err)
	s.True(output.Success)

	_, err = s.service.Remove(s.ctx, &RemoveInput{ID: s.testDeckID})
	s.ErrorIs(err, ErrNotFound)

	_, err = s.service.GetDeck(s.ctx, &GetDeckInput{DeckID: s.testDeckID})
	s.ErrorIs(err, ErrDeckNotFound)
}

func (s *TableServiceTestSuite) TestConcurrentDrawsConserveCards() {
	cards := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		cards = append(cards, fmt.Sprintf("card-%d", i%10))
	}
	// bytes.Buffer is not safe for concurrent writes, so log nowhere
	svc, err := New(&Config{Seed: 2, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.Require().NoError(err)
	s.service = svc
	created := s.createDeck(cards...)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				output, err := s.service.Draw(s.ctx, &DrawInput{DeckID: s.testDeckID, Count: 3})
				if err != nil {
					return
				}
				if _, err := s.service.ReturnCards(s.ctx, &ReturnCardsInput{
					DeckID: s.testDeckID,
					Cards:  output.Cards,
				}); err != nil {
					return
				}
				if _, err := s.service.Shuffle(s.ctx, &ShuffleInput{DeckID: s.testDeckID}); err != nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	output, err := s.service.GetDeck(s.ctx, &GetDeckInput{DeckID: s.testDeckID})
	s.Require().NoError(err)
	s.Equal(created.Pool, output.Deck.Pool)
	s.Empty(output.Deck.Drawn)
	s.Equal(200, output.Deck.Remaining)
}
