package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/domain/farm/mocks"
	"github.com/x-xyz/yieldfarm/service/movecall"
)

type ComposerTestSuite struct {
	suite.Suite

	im *Composer
}

func TestComposerTestSuite(t *testing.T) {
	suite.Run(t, new(ComposerTestSuite))
}

func (s *ComposerTestSuite) SetupTest() {
	builder, err := movecall.NewBuilder(&movecall.BuilderCfg{PackageId: testPackage})
	s.Require().NoError(err)
	s.im = NewComposer(builder)
}

func (s *ComposerTestSuite) TestStakeNewAccount() {
	tx, err := s.im.ComposeStake(newSnapshot(nil), testWallet, 5)
	s.Require().NoError(err)
	s.Require().Equal([]farm.Op{farm.OpCreateAccount, farm.OpStake, farm.OpTransferObjects}, tx.Ops())

	// the stake and the transfer both consume the account being created
	s.Require().Equal(farm.Result(0), tx.Commands[1].Args[1])
	s.Require().Equal(farm.Result(0), tx.Commands[2].Args[0])
	s.Require().Equal(farm.Pure(testWallet.ToLowerStr()), tx.Commands[2].Args[1])
	s.Require().Equal(testWallet, tx.Sender)
}

func (s *ComposerTestSuite) TestStakeExistingAccount() {
	tx, err := s.im.ComposeStake(newSnapshot(newTestAccount(10)), testWallet, 5)
	s.Require().NoError(err)
	s.Require().Equal([]farm.Op{farm.OpStake}, tx.Ops())
	s.Require().Equal(farm.Object(testAccount), tx.Commands[0].Args[1])
}

func (s *ComposerTestSuite) TestStakeNotLoaded() {
	_, err := s.im.ComposeStake(nil, testWallet, 5)
	s.Require().ErrorIs(err, farm.ErrFarmNotLoaded)
}

func (s *ComposerTestSuite) TestHarvest() {
	tx, err := s.im.ComposeHarvest(newSnapshot(newTestAccount(10)), testWallet, rewardType)
	s.Require().NoError(err)
	s.Require().Equal([]farm.Op{farm.OpHarvest, farm.OpTransferObjects}, tx.Ops())
	s.Require().Equal(farm.Result(0), tx.Commands[1].Args[0])

	_, err = s.im.ComposeHarvest(newSnapshot(nil), testWallet, rewardType)
	s.Require().ErrorIs(err, farm.ErrNoAccount)
}

func (s *ComposerTestSuite) TestUnstake() {
	const balance = 2_000_000_000
	cases := []struct {
		name       string
		amount     uint64
		hasRewards bool
		want       []farm.Op
	}{
		{
			name:       "max withdrawal with rewards harvests first",
			amount:     balance,
			hasRewards: true,
			want:       []farm.Op{farm.OpHarvest, farm.OpTransferObjects, farm.OpUnstake, farm.OpTransferObjects},
		},
		{
			name:   "max withdrawal without rewards",
			amount: balance,
			want:   []farm.Op{farm.OpUnstake, farm.OpTransferObjects},
		},
		{
			name:       "partial withdrawal never harvests",
			amount:     balance - 1,
			hasRewards: true,
			want:       []farm.Op{farm.OpUnstake, farm.OpTransferObjects},
		},
		{
			name:   "partial withdrawal without rewards",
			amount: 1,
			want:   []farm.Op{farm.OpUnstake, farm.OpTransferObjects},
		},
	}
	for _, c := range cases {
		tx, err := s.im.ComposeUnstake(newSnapshot(newTestAccount(balance)), testWallet, c.amount, rewardType, c.hasRewards)
		s.Require().NoError(err, c.name)
		s.Require().Equal(c.want, tx.Ops(), c.name)
		s.Require().NoError(tx.Validate(), c.name)
	}
}

func (s *ComposerTestSuite) TestCompoundSameCoinRestakes() {
	tx, err := s.im.ComposeCompound(newSnapshot(newTestAccount(10)), testWallet, stakeType)
	s.Require().NoError(err)
	s.Require().Equal([]farm.Op{farm.OpHarvest, farm.OpStake}, tx.Ops())
	// the harvested coin is the deposit, it never reaches the signer
	s.Require().Equal(farm.Result(0), tx.Commands[1].Args[2])
}

func (s *ComposerTestSuite) TestCompoundOtherCoinIsHarvest() {
	snap := newSnapshot(newTestAccount(10))
	compound, err := s.im.ComposeCompound(snap, testWallet, rewardType)
	s.Require().NoError(err)
	harvest, err := s.im.ComposeHarvest(snap, testWallet, rewardType)
	s.Require().NoError(err)
	s.Require().Equal(harvest, compound)
}

func (s *ComposerTestSuite) TestBuilderErrorIsReturned() {
	builder := mocks.NewTransactionBuilder(s.T())
	builder.On("Harvest", mock.Anything, mock.Anything, mock.Anything, rewardType).Return(farm.Argument{}, errors.New("boom")).Once()

	_, err := NewComposer(builder).ComposeHarvest(newSnapshot(newTestAccount(10)), testWallet, rewardType)
	s.Require().EqualError(err, "harvest: boom")
}

func (s *ComposerTestSuite) TestIsRestakable() {
	f := newTestFarm()
	s.Require().True(IsRestakable(f, stakeType))
	s.Require().True(IsRestakable(f, "0x0000000000000000000000000000000000000000000000000000000000000002::sui::SUI"))
	s.Require().False(IsRestakable(f, rewardType))
	s.Require().False(IsRestakable(f, "0xdead::x::X"))
}
