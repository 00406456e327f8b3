package dice

import (
	"testing"

	"github.com/KirkDiggler/tabletoprandom/random/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ChargedDieTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockSource *mocks.MockSource
}

func (s *ChargedDieTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSource = mocks.NewMockSource(s.mockCtrl)
}

func (s *ChargedDieTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestChargedDieTestSuite(t *testing.T) {
	suite.Run(t, new(ChargedDieTestSuite))
}

func (s *ChargedDieTestSuite) TestNewCharged_NegativeCharge() {
	inner, err := NewTraditional(6, s.mockSource)
	s.Require().NoError(err)

	_, err = NewCharged[int](inner, -1)
	s.ErrorIs(err, ErrNegativeCharge)
	s.ErrorIs(err, ErrInvalidArgument)
}

func (s *ChargedDieTestSuite) TestNewCharged_NilInner() {
	_, err := NewCharged[int](nil, 1)
	s.ErrorIs(err, ErrNilDie)
}

func (s *ChargedDieTestSuite) TestRoll_SpendsChargeThenDelegates() {
	die, err := NewMagical(6, 3, s.mockSource)
	s.Require().NoError(err)

	// no Intn calls are expected while the die is charged
	for i := 0; i < 3; i++ {
		s.Equal(6, die.Roll())
		s.Equal(2-i, die.Charge())
	}

	s.mockSource.EXPECT().Intn(6).Return(1)
	s.Equal(2, die.Roll())
	s.Equal(0, die.Charge())

	last, ok := die.LastRoll()
	s.True(ok)
	s.Equal(2, last)
}

func (s *ChargedDieTestSuite) TestRolls_CrossesCharge() {
	die, err := NewMagical(20, 2, s.mockSource)
	s.Require().NoError(err)

	s.mockSource.EXPECT().Intn(20).Return(4)

	results, err := die.Rolls(3)
	s.Require().NoError(err)
	s.Equal([]int{20, 20, 5}, results)

	_, err = die.Rolls(-1)
	s.ErrorIs(err, ErrNegativeRolls)
}

func (s *ChargedDieTestSuite) TestEmpower() {
	die, err := NewMagical(6, 0, s.mockSource)
	s.Require().NoError(err)

	charge, err := die.Empower(1)
	s.Require().NoError(err)
	s.Equal(1, charge)

	charge, err = die.Empower(4)
	s.Require().NoError(err)
	s.Equal(5, charge)

	charge, err = die.Empower(0)
	s.Require().NoError(err)
	s.Equal(5, charge)

	charge, err = die.Empower(-2)
	s.ErrorIs(err, ErrNegativeCharge)
	s.Equal(5, charge)
	s.Equal(5, die.Charge())
}

func (s *ChargedDieTestSuite) TestDispel() {
	die, err := NewMagical(6, 4, s.mockSource)
	s.Require().NoError(err)

	die.Dispel()
	s.Equal(0, die.Charge())
	die.Dispel()
	s.Equal(0, die.Charge())

	s.mockSource.EXPECT().Intn(6).Return(0)
	s.Equal(1, die.Roll())
}

func (s *ChargedDieTestSuite) TestDelegatesFaceModel() {
	die, err := NewMagical(20, 1, s.mockSource)
	s.Require().NoError(err)

	s.Equal(20, die.NumFaces())
	s.Equal(20, die.BestRoll())
	s.Equal(1, die.WorstRoll())
	s.Equal(1.0/20, die.Probability(7))
	s.Equal(0.0, die.Probability(21))
	s.True(die.HasFace(20))
	s.Len(die.Mode(), 20)
	s.Equal(die.Inner().FaceOrder(), die.FaceOrder())
}

func (s *ChargedDieTestSuite) TestString() {
	die, err := NewMagical(6, 2, s.mockSource)
	s.Require().NoError(err)
	s.Equal("d6(2)", die.String())

	die.Roll()
	s.Equal("d6(1)", die.String())
}

func (s *ChargedDieTestSuite) TestWrapsAnyOrderedDie() {
	inner, err := NewOrdered([]string{"bronze", "silver", "gold"}, s.mockSource)
	s.Require().NoError(err)

	die, err := NewCharged[string](inner, 1)
	s.Require().NoError(err)

	s.Equal("silver", die.Roll())
}

func (s *ChargedDieTestSuite) TestMean_DescribesUnchargedRoll() {
	die, err := NewMagical(20, 3, s.mockSource)
	s.Require().NoError(err)
	s.InDelta(10.5, die.Mean(), 1e-9)

	fudge, err := NewFudge(s.mockSource)
	s.Require().NoError(err)
	charged, err := NewNumericCharged[int](fudge, 1)
	s.Require().NoError(err)
	s.InDelta(0.0, charged.Mean(), 1e-9)
	s.Equal(FudgePlus, charged.Roll())
}

func (s *ChargedDieTestSuite) TestAll_SpendsChargeFirst() {
	die, err := NewMagical(6, 2, s.mockSource)
	s.Require().NoError(err)

	s.mockSource.EXPECT().Intn(6).Return(0)

	var results []int
	for value := range die.All() {
		results = append(results, value)
		if len(results) == 3 {
			break
		}
	}
	s.Equal([]int{6, 6, 1}, results)
	s.Equal(0, die.Charge())
}

func (s *ChargedDieTestSuite) TestMeanOf() {
	die, err := NewMagical(6, 2, s.mockSource)
	s.Require().NoError(err)

	s.InDelta(3.5, MeanOf[int](die), 1e-9)
}
